package service

import (
	"context"
	"strings"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/importer"
	"github.com/mansoorceksport/liftlog/internal/seed"
	"github.com/mansoorceksport/liftlog/internal/store"
	log "github.com/sirupsen/logrus"
)

// importedWorkoutMinutes is the duration given to imported workouts, the log
// carries no times
const importedWorkoutMinutes = 60

type ImportOptions struct {
	SessionsPerWeek float64
	BreakWeeks      int
}

// ImportRequest is a pasted workout log. Cadence fields override the defaults
// when set.
type ImportRequest struct {
	Text            string   `json:"text"`
	StartDate       string   `json:"startDate"`
	SessionsPerWeek *float64 `json:"sessionsPerWeek,omitempty"`
	BreakWeeks      *int     `json:"breakWeeks,omitempty"`
	DryRun          bool     `json:"dryRun"`
}

type ImportResult struct {
	Parsed     []importer.Workout        `json:"parsed"`
	Imported   int                       `json:"imported"`
	Workouts   []domain.CompletedWorkout `json:"workouts"`
	ArchiveURL string                    `json:"archiveUrl,omitempty"`
}

// ImportService parses workout logs and merges them into the workout history
type ImportService struct {
	store   *store.Store
	users   domain.UserContext
	archive domain.ImportArchive // optional
	options ImportOptions
}

func NewImportService(st *store.Store, users domain.UserContext, archive domain.ImportArchive, options ImportOptions) *ImportService {
	if options.SessionsPerWeek <= 0 {
		options.SessionsPerWeek = importer.DefaultSessionsPerWeek
	}
	if options.BreakWeeks < 0 {
		options.BreakWeeks = importer.DefaultBreakWeeks
	}
	return &ImportService{
		store:   st,
		users:   users,
		archive: archive,
		options: options,
	}
}

func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, invalid("text is required")
	}
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return nil, invalid("startDate must be YYYY-MM-DD")
	}

	opts := importer.Options{
		StartDate:            start,
		SessionsPerWeek:      s.options.SessionsPerWeek,
		BreakWeeksAfterThree: s.options.BreakWeeks,
	}
	if req.SessionsPerWeek != nil {
		opts.SessionsPerWeek = *req.SessionsPerWeek
	}
	if req.BreakWeeks != nil {
		opts.BreakWeeksAfterThree = *req.BreakWeeks
	}

	parsed := importer.Parse(req.Text, opts)
	result := &ImportResult{Parsed: parsed, Workouts: []domain.CompletedWorkout{}}
	if req.DryRun || len(parsed) == 0 {
		return result, nil
	}

	library := s.store.Exercises(ctx, seed.Exercises())
	for _, day := range parsed {
		result.Workouts = append(result.Workouts, toCompletedWorkout(day, library))
	}

	if _, err := s.store.MergeCompletedWorkouts(ctx, s.store.CompletedWorkouts(ctx, nil), result.Workouts); err != nil {
		return nil, err
	}
	result.Imported = len(result.Workouts)

	if s.archive != nil {
		namespace := domain.CacheNamespace(ctx, s.users)
		url, err := s.archive.ArchiveImport(ctx, namespace, req.Text)
		if err != nil {
			log.WithField("namespace", namespace).Warnf("archive workout log: %s", err)
		} else {
			result.ArchiveURL = url
		}
	}

	log.WithField("namespace", domain.CacheNamespace(ctx, s.users)).
		Infof("imported %d workouts from a pasted log", result.Imported)
	return result, nil
}

// toCompletedWorkout links parsed exercise names to the library by name. Names
// not in the library get an exercise of their own.
func toCompletedWorkout(day importer.Workout, library []domain.Exercise) domain.CompletedWorkout {
	workout := domain.CompletedWorkout{
		ID:        generateULID(),
		PlanName:  day.PlanName,
		Date:      day.Date,
		Duration:  importedWorkoutMinutes,
		Exercises: make([]domain.WorkoutExercise, 0, len(day.Exercises)),
		Notes:     "Imported from workout log",
	}

	for _, parsed := range day.Exercises {
		exercise, ok := domain.FindExerciseByName(library, parsed.Name)
		if !ok {
			exercise = domain.Exercise{
				ID:          "imported-" + generateULID(),
				Name:        parsed.Name,
				MuscleGroup: domain.MatchMuscleGroup(parsed.Name),
			}
		}

		sets := make([]domain.WorkoutSet, len(parsed.Sets))
		for i, set := range parsed.Sets {
			sets[i] = domain.WorkoutSet{
				ID:        generateULID(),
				Reps:      set.Reps,
				Weight:    set.Weight,
				Completed: true,
			}
		}
		workout.Exercises = append(workout.Exercises, domain.WorkoutExercise{
			ID:         generateULID(),
			ExerciseID: exercise.ID,
			Exercise:   exercise,
			Sets:       sets,
		})
	}
	return workout
}
