package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/seed"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	st := store.New(repository.NewMemoryLocalCache(1), domain.ContextUser{}, store.Remotes{}, store.Options{})
	workoutService := service.NewWorkoutService(st)
	importService := service.NewImportService(st, domain.ContextUser{}, nil, service.ImportOptions{})
	dashboardService := service.NewDashboardService(st)

	exerciseHandler := NewExerciseHandler(workoutService)
	planHandler := NewPlanHandler(workoutService)
	workoutHandler := NewWorkoutHandler(workoutService)
	bodyWeightHandler := NewBodyWeightHandler(workoutService)
	importHandler := NewImportHandler(importService)
	statsHandler := NewStatsHandler(dashboardService)

	app := fiber.New()
	v1 := app.Group("/v1", middleware.DeviceScope())
	v1.Get("/exercises", exerciseHandler.ListExercises)
	v1.Post("/exercises", exerciseHandler.CreateExercise)
	v1.Put("/exercises/:id", exerciseHandler.UpdateExercise)
	v1.Delete("/exercises/:id", exerciseHandler.DeleteExercise)
	v1.Get("/plans", planHandler.ListPlans)
	v1.Post("/plans", planHandler.CreatePlan)
	v1.Patch("/plans/:id", planHandler.RenamePlan)
	v1.Post("/plans/:id/exercises", planHandler.AddExercise)
	v1.Delete("/plans/:id/exercises/:workoutExerciseId", planHandler.RemoveExercise)
	v1.Post("/plans/:id/sessions", planHandler.StartSession)
	v1.Delete("/plans/:id", planHandler.DeletePlan)
	v1.Get("/workouts", workoutHandler.ListWorkouts)
	v1.Post("/workouts", workoutHandler.LogWorkout)
	v1.Post("/sessions/finish", workoutHandler.FinishSession)
	v1.Delete("/workouts", workoutHandler.ClearWorkouts)
	v1.Get("/body-weights", bodyWeightHandler.ListBodyWeights)
	v1.Post("/body-weights", bodyWeightHandler.LogBodyWeight)
	v1.Delete("/body-weights/:date", bodyWeightHandler.DeleteBodyWeight)
	v1.Post("/import", importHandler.ImportLog)
	v1.Get("/stats/summary", statsHandler.GetSummary)
	v1.Get("/stats/plates", statsHandler.GetPlates)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.DeviceIDHeader, "test-device")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestExerciseHandlers(t *testing.T) {
	app := setupApp()

	var exercises []domain.Exercise
	assert.Equal(t, 200, request(t, app, "GET", "/v1/exercises", nil, &exercises))
	assert.Len(t, exercises, len(seed.Exercises()))

	var legs []domain.Exercise
	request(t, app, "GET", "/v1/exercises?muscleGroup=legs", nil, &legs)
	require.NotEmpty(t, legs)
	for _, ex := range legs {
		assert.Equal(t, "Legs", ex.MuscleGroup)
	}

	var created domain.Exercise
	assert.Equal(t, 201, request(t, app, "POST", "/v1/exercises", domain.Exercise{Name: "Hack Squat", MuscleGroup: "Legs"}, &created))
	assert.NotEmpty(t, created.ID)

	var errBody map[string]string
	assert.Equal(t, 400, request(t, app, "POST", "/v1/exercises", domain.Exercise{}, &errBody))
	assert.Contains(t, errBody["error"], "invalid input")

	var updated domain.Exercise
	assert.Equal(t, 200, request(t, app, "PUT", "/v1/exercises/"+created.ID, domain.Exercise{Name: "Hack Squat Machine", MuscleGroup: "Legs"}, &updated))
	assert.Equal(t, created.ID, updated.ID)

	assert.Equal(t, 200, request(t, app, "DELETE", "/v1/exercises/"+created.ID, nil, nil))
	assert.Equal(t, 404, request(t, app, "DELETE", "/v1/exercises/"+created.ID, nil, nil))
}

func TestPlanAndSessionHandlers(t *testing.T) {
	app := setupApp()

	var plan domain.WorkoutPlan
	require.Equal(t, 201, request(t, app, "POST", "/v1/plans", domain.WorkoutPlan{Name: "Upper"}, &plan))

	require.Equal(t, 201, request(t, app, "POST", "/v1/plans/"+plan.ID+"/exercises",
		fiber.Map{"exerciseId": "ex-bench-press", "sets": 2, "reps": 5}, &plan))
	require.Len(t, plan.Exercises, 1)
	assert.Len(t, plan.Exercises[0].Sets, 2)

	assert.Equal(t, 404, request(t, app, "POST", "/v1/plans/missing/exercises", fiber.Map{"exerciseId": "ex-bench-press"}, nil))

	var renamed domain.WorkoutPlan
	assert.Equal(t, 200, request(t, app, "PATCH", "/v1/plans/"+plan.ID, fiber.Map{"name": "Upper A"}, &renamed))
	assert.Equal(t, "Upper A", renamed.Name)

	var session domain.WorkoutSession
	require.Equal(t, 201, request(t, app, "POST", "/v1/plans/"+plan.ID+"/sessions", nil, &session))
	assert.Equal(t, "Upper A", session.PlanName)
	for i := range session.Exercises[0].Sets {
		session.Exercises[0].Sets[i].Weight = 80
		session.Exercises[0].Sets[i].Completed = true
	}

	var workout domain.CompletedWorkout
	require.Equal(t, 201, request(t, app, "POST", "/v1/sessions/finish", fiber.Map{"session": session, "notes": " felt strong "}, &workout))
	assert.Equal(t, "felt strong", workout.Notes)
	assert.Equal(t, 800.0, workout.Volume())

	early := session.StartedAt.Add(-1)
	assert.Equal(t, 400, request(t, app, "POST", "/v1/sessions/finish", fiber.Map{"session": session, "endedAt": early}, nil))

	var workouts []domain.CompletedWorkout
	request(t, app, "GET", "/v1/workouts", nil, &workouts)
	assert.Len(t, workouts, 1)

	assert.Equal(t, 200, request(t, app, "DELETE", "/v1/plans/"+plan.ID+"/exercises/"+plan.Exercises[0].ID, nil, &plan))
	assert.Empty(t, plan.Exercises)
	assert.Equal(t, 200, request(t, app, "DELETE", "/v1/plans/"+plan.ID, nil, nil))
}

func TestWorkoutHandlers_LogAndClear(t *testing.T) {
	app := setupApp()

	for _, date := range []string{"2024-03-01", "2024-03-05", "2024-03-03"} {
		require.Equal(t, 201, request(t, app, "POST", "/v1/workouts",
			domain.CompletedWorkout{PlanName: "Legs", Date: date, Duration: 45}, nil))
	}
	assert.Equal(t, 400, request(t, app, "POST", "/v1/workouts", domain.CompletedWorkout{Date: "03/01/2024", Duration: 45}, nil))

	var workouts []domain.CompletedWorkout
	request(t, app, "GET", "/v1/workouts?limit=2", nil, &workouts)
	require.Len(t, workouts, 2)
	assert.Equal(t, "2024-03-05", workouts[0].Date)
	assert.Equal(t, "2024-03-03", workouts[1].Date)

	assert.Equal(t, 200, request(t, app, "DELETE", "/v1/workouts", nil, nil))
	request(t, app, "GET", "/v1/workouts", nil, &workouts)
	assert.Empty(t, workouts)
}

func TestBodyWeightHandlers(t *testing.T) {
	app := setupApp()

	var entries []domain.BodyWeightEntry
	require.Equal(t, 200, request(t, app, "POST", "/v1/body-weights", domain.BodyWeightEntry{Date: "2024-03-02", Weight: 81}, &entries))
	require.Equal(t, 200, request(t, app, "POST", "/v1/body-weights", domain.BodyWeightEntry{Date: "2024-03-01", Weight: 82}, &entries))
	require.Equal(t, 200, request(t, app, "POST", "/v1/body-weights", domain.BodyWeightEntry{Date: "2024-03-02", Weight: 80.5}, &entries))
	assert.Equal(t, []domain.BodyWeightEntry{{Date: "2024-03-01", Weight: 82}, {Date: "2024-03-02", Weight: 80.5}}, entries)

	assert.Equal(t, 400, request(t, app, "POST", "/v1/body-weights", domain.BodyWeightEntry{Date: "2024-03-03", Weight: -1}, nil))
	assert.Equal(t, 200, request(t, app, "DELETE", "/v1/body-weights/2024-03-01", nil, nil))
	assert.Equal(t, 404, request(t, app, "DELETE", "/v1/body-weights/2024-03-01", nil, nil))

	request(t, app, "GET", "/v1/body-weights", nil, &entries)
	assert.Len(t, entries, 1)
}

func TestImportHandler(t *testing.T) {
	app := setupApp()
	text := "Day 1 - Peito Supino - 80(10)/85(8) Crucifixo - 20(12)\nDay 2 - Costas Remada - 60(10)"

	var dry service.ImportResult
	require.Equal(t, 200, request(t, app, "POST", "/v1/import",
		service.ImportRequest{Text: text, StartDate: "2024-01-01", DryRun: true}, &dry))
	assert.Len(t, dry.Parsed, 2)
	assert.Equal(t, 0, dry.Imported)

	var result service.ImportResult
	require.Equal(t, 201, request(t, app, "POST", "/v1/import",
		service.ImportRequest{Text: text, StartDate: "2024-01-01"}, &result))
	assert.Equal(t, 2, result.Imported)

	var workouts []domain.CompletedWorkout
	request(t, app, "GET", "/v1/workouts", nil, &workouts)
	assert.Len(t, workouts, 2)

	assert.Equal(t, 400, request(t, app, "POST", "/v1/import", service.ImportRequest{Text: "  ", StartDate: "2024-01-01"}, nil))
}

func TestStatsHandlers(t *testing.T) {
	app := setupApp()

	var summary domain.DashboardSummary
	require.Equal(t, 200, request(t, app, "GET", "/v1/stats/summary?weeks=4", nil, &summary))
	assert.Len(t, summary.WeeklyVolume, 4)
	assert.Zero(t, summary.TotalWorkouts)

	assert.Equal(t, 400, request(t, app, "GET", "/v1/stats/summary?weeks=0", nil, nil))

	var plates domain.PlateBreakdown
	require.Equal(t, 200, request(t, app, "GET", "/v1/stats/plates?weight=100", nil, &plates))
	assert.Equal(t, []domain.PlatePair{{Weight: 25, PerSide: 1}, {Weight: 15, PerSide: 1}}, plates.Plates)
	assert.Equal(t, 100.0, plates.Loaded)

	require.Equal(t, 200, request(t, app, "GET", "/v1/stats/plates?weight=60&bar=15&plates=20,10", nil, &plates))
	assert.Equal(t, 15.0, plates.Bar)
	assert.Equal(t, []domain.PlatePair{{Weight: 20, PerSide: 1}}, plates.Plates)
	assert.Equal(t, 55.0, plates.Loaded)
	assert.Equal(t, 5.0, plates.Remainder)

	assert.Equal(t, 400, request(t, app, "GET", "/v1/stats/plates?weight=abc", nil, nil))
	assert.Equal(t, 400, request(t, app, "GET", "/v1/stats/plates?weight=100&plates=20,x", nil, nil))
}

func TestRespondError_UnknownIsInternal(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, context.DeadlineExceeded)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
