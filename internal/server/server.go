package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/handler"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/seed"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/store"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client                // optional, the in-memory cache is used without it
	AuthClient  middleware.FirebaseAuthClient // optional, every request is anonymous without it
	Archive     domain.ImportArchive          // optional
}

// newLocalCache picks the cache backend
func newLocalCache(cfg *config.Config, redisClient *redis.Client) domain.LocalCache {
	if redisClient == nil || cfg.Redis.CacheBackend == config.CacheBackendMemory {
		log.WithField("size_mb", cfg.Redis.MemoryCacheSizeMB).Info("using in-memory local cache")
		return repository.NewMemoryLocalCache(cfg.Redis.MemoryCacheSizeMB)
	}
	return repository.NewRedisLocalCache(redisClient)
}

// NewRemotes builds the Mongo backed remote store of every entity type
func NewRemotes(db *mongo.Database) store.Remotes {
	return store.Remotes{
		Exercises:   repository.NewMongoExerciseRepository(db, seed.Exercises),
		Plans:       repository.NewMongoPlanRepository(db),
		Workouts:    repository.NewMongoWorkoutRepository(db),
		BodyWeights: repository.NewMongoBodyWeightRepository(db),
	}
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	cfg := deps.Config
	users := domain.ContextUser{}

	st := store.New(newLocalCache(cfg, deps.RedisClient), users, NewRemotes(deps.MongoDB), store.Options{
		CacheVersion: cfg.Redis.CacheVersion,
	})

	// Initialize services
	workoutService := service.NewWorkoutService(st)
	dashboardService := service.NewDashboardService(st)
	importService := service.NewImportService(st, users, deps.Archive, service.ImportOptions{
		SessionsPerWeek: cfg.Import.SessionsPerWeek,
		BreakWeeks:      cfg.Import.BreakWeeks,
	})

	// Initialize handlers
	exerciseHandler := handler.NewExerciseHandler(workoutService)
	planHandler := handler.NewPlanHandler(workoutService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)
	bodyWeightHandler := handler.NewBodyWeightHandler(workoutService)
	importHandler := handler.NewImportHandler(importService)
	statsHandler := handler.NewStatsHandler(dashboardService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LiftLog API",
		BodyLimit:    int(cfg.Server.MaxBodySizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Remote mirrors run in the background, let them land before exiting
	app.Hooks().OnShutdown(func() error {
		st.Wait()
		return nil
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID, " + middleware.DeviceIDHeader,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(telemetry.FiberMiddleware())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "liftlog",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")
	v1.Use(middleware.DeviceScope())
	if deps.AuthClient != nil {
		v1.Use(middleware.OptionalFirebaseAuth(deps.AuthClient))
	}

	exercises := v1.Group("/exercises")
	exercises.Get("/", exerciseHandler.ListExercises)
	exercises.Post("/", exerciseHandler.CreateExercise)
	exercises.Put("/:id", exerciseHandler.UpdateExercise)
	exercises.Delete("/:id", exerciseHandler.DeleteExercise)

	plans := v1.Group("/plans")
	plans.Get("/", planHandler.ListPlans)
	plans.Post("/", planHandler.CreatePlan)
	plans.Put("/:id", planHandler.UpdatePlan)
	plans.Patch("/:id", planHandler.RenamePlan)
	plans.Delete("/:id", planHandler.DeletePlan)
	plans.Post("/:id/exercises", planHandler.AddExercise)
	plans.Delete("/:id/exercises/:workoutExerciseId", planHandler.RemoveExercise)
	plans.Post("/:id/sessions", planHandler.StartSession)

	v1.Post("/sessions/finish", workoutHandler.FinishSession)

	workouts := v1.Group("/workouts")
	workouts.Get("/", workoutHandler.ListWorkouts)
	workouts.Post("/", workoutHandler.LogWorkout)
	workouts.Delete("/", workoutHandler.ClearWorkouts)

	bodyWeights := v1.Group("/body-weights")
	bodyWeights.Get("/", bodyWeightHandler.ListBodyWeights)
	bodyWeights.Post("/", bodyWeightHandler.LogBodyWeight)
	bodyWeights.Delete("/:date", bodyWeightHandler.DeleteBodyWeight)

	// Imports replay the first response per X-Correlation-ID
	if deps.RedisClient != nil {
		v1.Post("/import", middleware.IdempotencyMiddleware(deps.RedisClient, cfg.Import.IdempotencyTTL), importHandler.ImportLog)
	} else {
		v1.Post("/import", importHandler.ImportLog)
	}

	stats := v1.Group("/stats")
	stats.Get("/summary", statsHandler.GetSummary)
	stats.Get("/plates", statsHandler.GetPlates)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.WithFields(log.Fields{"path": c.Path(), "status": code}).Errorf("request error: %s", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
