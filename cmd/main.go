package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/logging"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/server"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.FormatJSON,
	})

	log.Println("starting liftlog service")

	ctx := context.Background()

	otelProvider, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: cfg.OTEL.ServiceVersion,
		Environment:    cfg.OTEL.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		InstanceID:     cfg.OTEL.InstanceID,
		Token:          cfg.OTEL.Token,
		CacheBackend:   cfg.Redis.CacheBackend,
		Enabled:        cfg.OTEL.Enabled,
	})
	if err != nil {
		log.Warnf("failed to initialize opentelemetry: %s", err)
	}
	if otelProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelProvider.Shutdown(shutdownCtx); err != nil {
				log.Errorf("shutdown opentelemetry: %s", err)
			}
		}()
	}

	deps := server.AppDependencies{Config: cfg}

	// Firebase is optional: without it every request uses the device cache only
	if cfg.AuthDisabled {
		log.Warn("authentication disabled, remote store is never used")
	} else {
		firebaseApp, err := middleware.InitFirebase(
			cfg.Firebase.ProjectID,
			cfg.Firebase.PrivateKey,
			cfg.Firebase.ClientEmail,
		)
		if err != nil {
			log.Fatalf("failed to initialize firebase: %s", err)
		}
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("failed to get firebase auth client: %s", err)
		}
		deps.AuthClient = authClient
		log.Println("firebase initialized")
	}

	// Connect to MongoDB with OpenTelemetry instrumentation
	ctxMongo, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Timeout bounds every remote store operation, a slow remote falls back to the cache
	mongoOpts := options.Client().ApplyURI(cfg.MongoDB.URI).SetTimeout(cfg.MongoDB.Timeout)
	if cfg.OTEL.Enabled {
		mongoOpts.SetMonitor(otelmongo.NewMonitor())
	}

	mongoClient, err := mongo.Connect(ctxMongo, mongoOpts)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %s", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Errorf("disconnect mongodb: %s", err)
		}
	}()

	// An unreachable remote is not fatal, reads fall back to the cache
	if err := mongoClient.Ping(ctxMongo, nil); err != nil {
		log.Warnf("mongodb ping failed: %s", err)
	} else {
		log.Println("mongodb connected")
	}
	deps.MongoDB = mongoClient.Database(cfg.MongoDB.Database)

	if cfg.Redis.CacheBackend == config.CacheBackendRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %s", err)
		}
		deps.RedisClient = redisClient
		log.Println("redis connected")
	}

	if cfg.S3.Endpoint != "" {
		archive, err := repository.NewS3ImportArchive(ctx, cfg.S3)
		if err != nil {
			log.Warnf("import archive disabled: %s", err)
		} else {
			deps.Archive = archive
		}
	}

	app := server.NewApp(deps)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("shutting down gracefully")
		app.Shutdown()
	}()

	log.Printf("server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("failed to start server: %s", err)
	}
}
