package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/seed"
	"github.com/mansoorceksport/liftlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLocalStore runs without a user, so no remote store is needed
func newLocalStore() *store.Store {
	return store.New(repository.NewMemoryLocalCache(1), domain.ContextUser{}, store.Remotes{}, store.Options{})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestWorkoutService_Exercises(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newLocalStore())

	assert.Equal(t, seed.Exercises(), svc.Exercises(ctx))

	created, err := svc.CreateExercise(ctx, domain.Exercise{Name: "  Zercher Squat ", MuscleGroup: "Legs", Equipment: domain.EquipmentBarbell})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Zercher Squat", created.Name)
	assert.Len(t, svc.Exercises(ctx), len(seed.Exercises())+1)

	created.Name = "Zercher Box Squat"
	_, err = svc.UpdateExercise(ctx, *created)
	require.NoError(t, err)
	found, ok := domain.FindExercise(svc.Exercises(ctx), created.ID)
	require.True(t, ok)
	assert.Equal(t, "Zercher Box Squat", found.Name)

	require.NoError(t, svc.DeleteExercise(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteExercise(ctx, created.ID), domain.ErrNotFound)
}

func TestWorkoutService_ExerciseValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newLocalStore())

	tests := []struct {
		name     string
		exercise domain.Exercise
	}{
		{name: "missing name", exercise: domain.Exercise{Name: "  "}},
		{name: "unknown equipment", exercise: domain.Exercise{Name: "Curl", Equipment: "kettlebell"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateExercise(ctx, tt.exercise)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := svc.UpdateExercise(ctx, domain.Exercise{ID: "missing", Name: "Curl"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := svc.CreateExercise(ctx, domain.Exercise{Name: "Chest Supported Row"})
	require.NoError(t, err)
	assert.Equal(t, "Chest", created.MuscleGroup, "muscle group is matched from the name")
}

func TestWorkoutService_PlanEditing(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newLocalStore())

	plan, err := svc.CreatePlan(ctx, domain.WorkoutPlan{Name: "Upper"})
	require.NoError(t, err)
	assert.Empty(t, plan.Exercises)

	plan, err = svc.AddExerciseToPlan(ctx, plan.ID, "ex-bench-press", 4, 6)
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 1)
	we := plan.Exercises[0]
	assert.Equal(t, "Barbell Bench Press", we.Exercise.Name)
	require.Len(t, we.Sets, 4)
	assert.Equal(t, 6, we.Sets[0].Reps)
	assert.NotEqual(t, we.Sets[0].ID, we.Sets[1].ID)

	plan, err = svc.AddExerciseToPlan(ctx, plan.ID, "ex-pull-up", 0, 0)
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 2)
	assert.Len(t, plan.Exercises[1].Sets, defaultPlanSets)

	_, err = svc.AddExerciseToPlan(ctx, plan.ID, "ex-missing", 3, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	plan, err = svc.RemoveExerciseFromPlan(ctx, plan.ID, we.ID)
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 1)
	assert.Equal(t, "ex-pull-up", plan.Exercises[0].ExerciseID)
	_, err = svc.RemoveExerciseFromPlan(ctx, plan.ID, we.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	plan, err = svc.RenamePlan(ctx, plan.ID, "Upper A")
	require.NoError(t, err)
	assert.Equal(t, "Upper A", plan.Name)
	_, err = svc.RenamePlan(ctx, plan.ID, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.DeletePlan(ctx, plan.ID))
	_, err = svc.RenamePlan(ctx, plan.ID, "Gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkoutService_PlanValidation(t *testing.T) {
	svc := NewWorkoutService(newLocalStore())

	_, err := svc.CreatePlan(context.Background(), domain.WorkoutPlan{
		Name: "Dupes",
		Exercises: []domain.WorkoutExercise{
			{ID: "we-1", ExerciseID: "ex-bench-press"},
			{ID: "we-1", ExerciseID: "ex-deadlift"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreatePlan(context.Background(), domain.WorkoutPlan{
		Name: "Negative",
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: "ex-bench-press", Sets: []domain.WorkoutSet{{Reps: -1}}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkoutService_Session(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	svc := NewWorkoutService(newLocalStore())
	svc.now = fixedClock(start)

	session, err := svc.StartSession(ctx, "plan-push")
	require.NoError(t, err)
	assert.Equal(t, "Push", session.PlanName)
	assert.Equal(t, start, session.StartedAt)
	require.NotEmpty(t, session.Exercises)
	planSetID := seed.Plans()[0].Exercises[0].Sets[0].ID
	assert.NotEqual(t, planSetID, session.Exercises[0].Sets[0].ID, "sessions get fresh ids")

	session.Exercises[0].Sets[0].Completed = true
	session.Exercises[0].Sets[0].Weight = 80

	workout, err := svc.FinishSession(ctx, *session, start.Add(47*time.Minute+10*time.Second), " good pump ")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", workout.Date)
	assert.Equal(t, "18:00", workout.StartTime)
	assert.Equal(t, "18:47", workout.EndTime)
	assert.Equal(t, 48, workout.Duration)
	assert.Equal(t, "good pump", workout.Notes)
	assert.Equal(t, 640.0, workout.Volume())

	workouts := svc.Workouts(ctx)
	require.Len(t, workouts, 1)
	assert.Equal(t, workout.ID, workouts[0].ID)

	_, err = svc.FinishSession(ctx, *session, start.Add(-time.Minute), "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFinished)

	_, err = svc.StartSession(ctx, "plan-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.ClearWorkouts(ctx))
	assert.Empty(t, svc.Workouts(ctx))
}

func TestWorkoutService_ShortSessionLastsAMinute(t *testing.T) {
	start := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	svc := NewWorkoutService(newLocalStore())

	workout, err := svc.FinishSession(context.Background(), domain.WorkoutSession{PlanName: "Quick", StartedAt: start}, start.Add(5*time.Second), "")
	require.NoError(t, err)
	assert.Equal(t, 1, workout.Duration)
}

func TestWorkoutService_BodyWeights(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newLocalStore())
	svc.now = fixedClock(time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC))

	_, err := svc.LogBodyWeight(ctx, domain.BodyWeightEntry{Date: "2024-03-10", Weight: 81})
	require.NoError(t, err)
	entries, err := svc.LogBodyWeight(ctx, domain.BodyWeightEntry{Weight: 80.6})
	require.NoError(t, err)
	assert.Equal(t, []domain.BodyWeightEntry{{Date: "2024-03-10", Weight: 81}, {Date: "2024-03-13", Weight: 80.6}}, entries)

	entries, err = svc.LogBodyWeight(ctx, domain.BodyWeightEntry{Date: "2024-03-10", Weight: 80.9})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.LogBodyWeight(ctx, domain.BodyWeightEntry{Date: "10/03/2024", Weight: 80})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.LogBodyWeight(ctx, domain.BodyWeightEntry{Date: "2024-03-10", Weight: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.DeleteBodyWeight(ctx, "2024-03-10"))
	assert.ErrorIs(t, svc.DeleteBodyWeight(ctx, "2024-03-10"), domain.ErrNotFound)
	assert.Len(t, svc.BodyWeights(ctx), 1)
}

type fakeArchive struct {
	namespace string
	text      string
	err       error
}

func (a *fakeArchive) ArchiveImport(_ context.Context, namespace string, text string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.namespace, a.text = namespace, text
	return "http://s3.local/liftlog/imports/" + strings.ReplaceAll(namespace, ":", "/") + "/1.txt", nil
}

const pastedLog = `Day 1 - Peito Barbell Bench Press - 80(10)/85(8) Crucifixo - 20(12)
Day 2 - Costas Remada - 60(10)`

func TestImportService_Import(t *testing.T) {
	ctx := domain.WithDeviceID(context.Background(), "phone")
	st := newLocalStore()
	archive := &fakeArchive{}
	svc := NewImportService(st, domain.ContextUser{}, archive, ImportOptions{SessionsPerWeek: 3.5, BreakWeeks: 2})

	result, err := svc.Import(ctx, ImportRequest{Text: pastedLog, StartDate: "2024-01-01"})
	require.NoError(t, err)
	require.Len(t, result.Parsed, 2)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, "device:phone", archive.namespace)
	assert.Equal(t, pastedLog, archive.text)
	assert.NotEmpty(t, result.ArchiveURL)

	first := result.Workouts[0]
	assert.Equal(t, "Peito", first.PlanName)
	assert.Equal(t, "2024-01-01", first.Date)
	assert.Equal(t, importedWorkoutMinutes, first.Duration)
	require.Len(t, first.Exercises, 2)
	assert.Equal(t, "ex-bench-press", first.Exercises[0].ExerciseID, "known names link to the library")
	assert.True(t, first.Exercises[0].Sets[0].Completed)
	assert.True(t, strings.HasPrefix(first.Exercises[1].ExerciseID, "imported-"))
	assert.Equal(t, "Crucifixo", first.Exercises[1].Exercise.Name)

	stored := st.CompletedWorkouts(ctx, nil)
	require.Len(t, stored, 2)
	assert.Equal(t, "2024-01-03", stored[1].Date)
}

func TestImportService_DryRunDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	st := newLocalStore()
	archive := &fakeArchive{}
	svc := NewImportService(st, domain.ContextUser{}, archive, ImportOptions{})

	spw := 7.0
	result, err := svc.Import(ctx, ImportRequest{Text: pastedLog, StartDate: "2024-01-01", SessionsPerWeek: &spw, DryRun: true})
	require.NoError(t, err)
	require.Len(t, result.Parsed, 2)
	assert.Equal(t, "2024-01-02", result.Parsed[1].Date)
	assert.Zero(t, result.Imported)
	assert.Empty(t, st.CompletedWorkouts(ctx, nil))
	assert.Empty(t, archive.text)
}

func TestImportService_ArchiveFailureDoesNotFailImport(t *testing.T) {
	svc := NewImportService(newLocalStore(), domain.ContextUser{}, &fakeArchive{err: assert.AnError}, ImportOptions{})

	result, err := svc.Import(context.Background(), ImportRequest{Text: pastedLog, StartDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.ArchiveURL)
}

func TestImportService_Validation(t *testing.T) {
	svc := NewImportService(newLocalStore(), domain.ContextUser{}, nil, ImportOptions{})

	_, err := svc.Import(context.Background(), ImportRequest{Text: " ", StartDate: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Import(context.Background(), ImportRequest{Text: pastedLog, StartDate: "01/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	result, err := svc.Import(context.Background(), ImportRequest{Text: "nothing to see", StartDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Empty(t, result.Parsed)
	assert.Zero(t, result.Imported)
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	st := newLocalStore()
	now := time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC)

	workouts := NewWorkoutService(st)
	workouts.now = fixedClock(now)
	for _, date := range []string{"2024-03-05", "2024-03-12"} {
		_, err := st.AddCompletedWorkout(ctx, st.CompletedWorkouts(ctx, nil), domain.CompletedWorkout{
			ID:       "w-" + date,
			Date:     date,
			Duration: 50,
			Exercises: []domain.WorkoutExercise{{
				ID:         "we-1",
				ExerciseID: "ex-deadlift",
				Sets:       []domain.WorkoutSet{{ID: "s1", Weight: 140, Reps: 5, Completed: true}},
			}},
		})
		require.NoError(t, err)
	}
	_, err := workouts.LogBodyWeight(ctx, domain.BodyWeightEntry{Date: "2024-03-12", Weight: 82})
	require.NoError(t, err)

	dashboard := NewDashboardService(st)
	dashboard.now = fixedClock(now)
	summary, err := dashboard.Summary(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalWorkouts)
	assert.Equal(t, 1400.0, summary.TotalVolume)
	assert.Equal(t, 2, summary.StreakWeeks)
	assert.Equal(t, 1, summary.ThisWeek.Workouts)
	assert.Len(t, summary.WeeklyVolume, DefaultSummaryWeeks)
	require.Len(t, summary.PersonalRecords, 1)
	assert.Equal(t, "Deadlift", summary.PersonalRecords[0].ExerciseName)
	assert.Equal(t, 82.0, summary.BodyWeight.Latest)
	require.NotNil(t, summary.LastWorkout)
	assert.Equal(t, "2024-03-12", summary.LastWorkout.Date)
}

func TestDashboardService_SummaryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := NewDashboardService(newLocalStore()).Summary(ctx, 4)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, summary)
}

func TestDashboardService_SummaryOnFreshDevice(t *testing.T) {
	st := newLocalStore()
	ctx := domain.WithDeviceID(context.Background(), "new-phone")
	workouts := NewWorkoutService(st)
	dashboard := NewDashboardService(st)

	custom, err := workouts.CreateExercise(ctx, domain.Exercise{Name: "Zercher Squat", MuscleGroup: "Legs", Equipment: domain.EquipmentBarbell})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := dashboard.Summary(ctx, 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Contains(t, workouts.Exercises(ctx), *custom)
}

func TestWorkoutService_LogWorkout(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newLocalStore())

	workout, err := svc.LogWorkout(ctx, domain.CompletedWorkout{
		PlanName:  "Legs",
		Date:      "2024-03-10",
		StartTime: "07:30",
		Duration:  55,
		Exercises: []domain.WorkoutExercise{{ExerciseID: "ex-barbell-squat", Sets: []domain.WorkoutSet{{Reps: 5, Weight: 120, Completed: true}}}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, workout.ID)
	assert.NotEmpty(t, workout.Exercises[0].ID)
	assert.NotEmpty(t, workout.Exercises[0].Sets[0].ID)
	assert.Len(t, svc.Workouts(ctx), 1)

	tests := []struct {
		name    string
		workout domain.CompletedWorkout
	}{
		{name: "bad date", workout: domain.CompletedWorkout{Date: "March 10", Duration: 10}},
		{name: "bad time", workout: domain.CompletedWorkout{Date: "2024-03-10", StartTime: "7pm", Duration: 10}},
		{name: "zero duration", workout: domain.CompletedWorkout{Date: "2024-03-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.LogWorkout(ctx, tt.workout)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
