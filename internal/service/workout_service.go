package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/seed"
	"github.com/mansoorceksport/liftlog/internal/store"
	"github.com/oklog/ulid/v2"
)

const (
	defaultPlanSets = 3
	defaultPlanReps = 10
)

// WorkoutService validates user input and drives the store for every entity type
type WorkoutService struct {
	store *store.Store
	now   func() time.Time
}

func NewWorkoutService(st *store.Store) *WorkoutService {
	return &WorkoutService{
		store: st,
		now:   time.Now,
	}
}

// generateULID creates a new ULID string
func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Exercises returns the exercise library, the default library when nothing else is available
func (s *WorkoutService) Exercises(ctx context.Context) []domain.Exercise {
	return s.store.Exercises(ctx, seed.Exercises())
}

func validateExercise(exercise *domain.Exercise) error {
	exercise.Name = strings.TrimSpace(exercise.Name)
	exercise.MuscleGroup = strings.TrimSpace(exercise.MuscleGroup)
	if exercise.Name == "" {
		return invalid("name is required")
	}
	if exercise.MuscleGroup == "" {
		exercise.MuscleGroup = domain.MatchMuscleGroup(exercise.Name)
	}
	if !exercise.Equipment.Valid() {
		return invalid("unknown equipment %q", exercise.Equipment)
	}
	return nil
}

func (s *WorkoutService) CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if err := validateExercise(&exercise); err != nil {
		return nil, err
	}
	if exercise.ID == "" {
		exercise.ID = generateULID()
	}

	if _, err := s.store.AddExercise(ctx, s.Exercises(ctx), exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *WorkoutService) UpdateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if err := validateExercise(&exercise); err != nil {
		return nil, err
	}
	current := s.Exercises(ctx)
	if _, ok := domain.FindExercise(current, exercise.ID); !ok {
		return nil, domain.ErrNotFound
	}

	if _, err := s.store.UpdateExercise(ctx, current, exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// DeleteExercise leaves plans and workouts that reference the exercise untouched
func (s *WorkoutService) DeleteExercise(ctx context.Context, id string) error {
	current := s.Exercises(ctx)
	if _, ok := domain.FindExercise(current, id); !ok {
		return domain.ErrNotFound
	}
	_, err := s.store.RemoveExercise(ctx, current, id)
	return err
}

// Plans returns the workout plans, the starter plans when nothing else is available
func (s *WorkoutService) Plans(ctx context.Context) []domain.WorkoutPlan {
	return s.store.Plans(ctx, seed.Plans())
}

func findPlan(plans []domain.WorkoutPlan, id string) (domain.WorkoutPlan, bool) {
	for _, plan := range plans {
		if plan.ID == id {
			return plan, true
		}
	}
	return domain.WorkoutPlan{}, false
}

func validatePlan(plan *domain.WorkoutPlan) error {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return invalid("name is required")
	}

	seen := make(map[string]bool, len(plan.Exercises))
	for i := range plan.Exercises {
		we := &plan.Exercises[i]
		if we.ExerciseID == "" {
			return invalid("exercise %d has no exerciseId", i+1)
		}
		if we.ID == "" {
			we.ID = generateULID()
		}
		if seen[we.ID] {
			return invalid("duplicate workout exercise id %s", we.ID)
		}
		seen[we.ID] = true
		if err := validateSets(we.Sets); err != nil {
			return err
		}
	}
	return nil
}

func validateSets(sets []domain.WorkoutSet) error {
	seen := make(map[string]bool, len(sets))
	for i := range sets {
		set := &sets[i]
		if set.Reps < 0 || set.Weight < 0 {
			return invalid("reps and weight must not be negative")
		}
		if set.ID == "" {
			set.ID = generateULID()
		}
		if seen[set.ID] {
			return invalid("duplicate set id %s", set.ID)
		}
		seen[set.ID] = true
	}
	return nil
}

func (s *WorkoutService) CreatePlan(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := validatePlan(&plan); err != nil {
		return nil, err
	}
	if plan.ID == "" {
		plan.ID = generateULID()
	}
	if plan.Exercises == nil {
		plan.Exercises = []domain.WorkoutExercise{}
	}

	if _, err := s.store.AddPlan(ctx, s.Plans(ctx), plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan replaces the whole plan
func (s *WorkoutService) UpdatePlan(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := validatePlan(&plan); err != nil {
		return nil, err
	}
	current := s.Plans(ctx)
	if _, ok := findPlan(current, plan.ID); !ok {
		return nil, domain.ErrNotFound
	}

	if _, err := s.store.UpdatePlan(ctx, current, plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *WorkoutService) DeletePlan(ctx context.Context, id string) error {
	current := s.Plans(ctx)
	if _, ok := findPlan(current, id); !ok {
		return domain.ErrNotFound
	}
	_, err := s.store.RemovePlan(ctx, current, id)
	return err
}

func (s *WorkoutService) RenamePlan(ctx context.Context, id, name string) (*domain.WorkoutPlan, error) {
	plan, ok := findPlan(s.Plans(ctx), id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	plan.Name = name
	return s.UpdatePlan(ctx, plan)
}

// AddExerciseToPlan appends sets empty sets of reps for the exercise. sets and
// reps fall back to 3x10 when not positive.
func (s *WorkoutService) AddExerciseToPlan(ctx context.Context, planID, exerciseID string, sets, reps int) (*domain.WorkoutPlan, error) {
	plan, ok := findPlan(s.Plans(ctx), planID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	exercise, ok := domain.FindExercise(s.Exercises(ctx), exerciseID)
	if !ok {
		return nil, invalid("exercise %s is not in the library", exerciseID)
	}
	if sets <= 0 {
		sets = defaultPlanSets
	}
	if reps <= 0 {
		reps = defaultPlanReps
	}

	we := domain.WorkoutExercise{
		ID:         generateULID(),
		ExerciseID: exercise.ID,
		Exercise:   exercise,
		Sets:       make([]domain.WorkoutSet, sets),
	}
	for i := range we.Sets {
		we.Sets[i] = domain.WorkoutSet{ID: generateULID(), Reps: reps}
	}

	plan.Exercises = append(append([]domain.WorkoutExercise{}, plan.Exercises...), we)
	return s.UpdatePlan(ctx, plan)
}

func (s *WorkoutService) RemoveExerciseFromPlan(ctx context.Context, planID, workoutExerciseID string) (*domain.WorkoutPlan, error) {
	plan, ok := findPlan(s.Plans(ctx), planID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	exercises := make([]domain.WorkoutExercise, 0, len(plan.Exercises))
	for _, we := range plan.Exercises {
		if we.ID != workoutExerciseID {
			exercises = append(exercises, we)
		}
	}
	if len(exercises) == len(plan.Exercises) {
		return nil, domain.ErrNotFound
	}
	plan.Exercises = exercises
	return s.UpdatePlan(ctx, plan)
}

// StartSession snapshots a plan into a new session. The session gets fresh ids
// and its sets start not completed, so the plan itself is never touched.
func (s *WorkoutService) StartSession(ctx context.Context, planID string) (*domain.WorkoutSession, error) {
	plan, ok := findPlan(s.Plans(ctx), planID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	library := s.Exercises(ctx)

	session := &domain.WorkoutSession{
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		StartedAt: s.now(),
		Exercises: make([]domain.WorkoutExercise, len(plan.Exercises)),
	}
	for i, we := range plan.Exercises {
		sets := make([]domain.WorkoutSet, len(we.Sets))
		for j, set := range we.Sets {
			sets[j] = domain.WorkoutSet{ID: generateULID(), Reps: set.Reps, Weight: set.Weight}
		}
		session.Exercises[i] = domain.WorkoutExercise{
			ID:         generateULID(),
			ExerciseID: we.ExerciseID,
			Exercise:   we.Resolve(library),
			Sets:       sets,
		}
	}
	return session, nil
}

// FinishSession turns a session into a completed workout ending at end
func (s *WorkoutService) FinishSession(ctx context.Context, session domain.WorkoutSession, end time.Time, notes string) (*domain.CompletedWorkout, error) {
	if session.StartedAt.IsZero() {
		return nil, invalid("session has no start time")
	}
	if end.IsZero() {
		end = s.now()
	}
	if end.Before(session.StartedAt) {
		return nil, domain.ErrSessionNotFinished
	}

	exercises := append([]domain.WorkoutExercise{}, session.Exercises...)
	for i := range exercises {
		if exercises[i].ID == "" {
			exercises[i].ID = generateULID()
		}
		exercises[i].Sets = append([]domain.WorkoutSet{}, exercises[i].Sets...)
		if err := validateSets(exercises[i].Sets); err != nil {
			return nil, err
		}
	}

	start := session.StartedAt.In(end.Location())
	workout := domain.CompletedWorkout{
		ID:        generateULID(),
		PlanID:    session.PlanID,
		PlanName:  session.PlanName,
		Date:      start.Format(domain.DateLayout),
		StartTime: start.Format(domain.ClockLayout),
		EndTime:   end.Format(domain.ClockLayout),
		Duration:  domain.DurationMinutes(start, end),
		Exercises: exercises,
		Notes:     strings.TrimSpace(notes),
	}

	if _, err := s.store.AddCompletedWorkout(ctx, s.store.CompletedWorkouts(ctx, nil), workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// Workouts returns the workout log, most recent first
func (s *WorkoutService) Workouts(ctx context.Context) []domain.CompletedWorkout {
	workouts := s.store.CompletedWorkouts(ctx, nil)
	domain.SortWorkoutsRecentFirst(workouts)
	return workouts
}

// LogWorkout appends a workout recorded outside a session
func (s *WorkoutService) LogWorkout(ctx context.Context, workout domain.CompletedWorkout) (*domain.CompletedWorkout, error) {
	if _, err := time.Parse(domain.DateLayout, workout.Date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	for _, clock := range []string{workout.StartTime, workout.EndTime} {
		if _, err := time.Parse(domain.ClockLayout, clock); clock != "" && err != nil {
			return nil, invalid("times must be HH:MM")
		}
	}
	if workout.Duration < 1 {
		return nil, invalid("duration must be at least one minute")
	}

	exercises := append([]domain.WorkoutExercise{}, workout.Exercises...)
	seen := make(map[string]bool, len(exercises))
	for i := range exercises {
		if exercises[i].ID == "" {
			exercises[i].ID = generateULID()
		}
		if seen[exercises[i].ID] {
			return nil, invalid("duplicate workout exercise id %s", exercises[i].ID)
		}
		seen[exercises[i].ID] = true
		exercises[i].Sets = append([]domain.WorkoutSet{}, exercises[i].Sets...)
		if err := validateSets(exercises[i].Sets); err != nil {
			return nil, err
		}
	}
	workout.Exercises = exercises
	if workout.ID == "" {
		workout.ID = generateULID()
	}

	if _, err := s.store.AddCompletedWorkout(ctx, s.store.CompletedWorkouts(ctx, nil), workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

func (s *WorkoutService) ClearWorkouts(ctx context.Context) error {
	_, err := s.store.ClearCompletedWorkouts(ctx)
	return err
}

// BodyWeights returns the body weight log, oldest first
func (s *WorkoutService) BodyWeights(ctx context.Context) []domain.BodyWeightEntry {
	return s.store.BodyWeights(ctx, nil)
}

// LogBodyWeight records the weight for a date, replacing an earlier entry of
// the same date
func (s *WorkoutService) LogBodyWeight(ctx context.Context, entry domain.BodyWeightEntry) ([]domain.BodyWeightEntry, error) {
	if entry.Date == "" {
		entry.Date = s.now().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, entry.Date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if entry.Weight <= 0 {
		return nil, invalid("weight must be positive")
	}
	return s.store.AddBodyWeight(ctx, s.BodyWeights(ctx), entry)
}

func (s *WorkoutService) DeleteBodyWeight(ctx context.Context, date string) error {
	current := s.BodyWeights(ctx)
	for _, entry := range current {
		if entry.Date == date {
			_, err := s.store.RemoveBodyWeight(ctx, current, date)
			return err
		}
	}
	return domain.ErrNotFound
}
