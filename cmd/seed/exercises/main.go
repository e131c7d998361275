package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/seed"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	userID := flag.String("user", "", "User ID to populate the default exercise library for (required)")
	flag.Parse()

	if *userID == "" {
		fmt.Println("Usage: seed_exercises -user <USER_ID>")
		fmt.Println("\nCopies the default exercise library into the user's remote library.")
		fmt.Println("Exercises the user already has are left untouched.")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %s", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoExerciseRepository(db, seed.Exercises)

	if err := repo.PopulateDefaults(ctx, *userID); err != nil {
		log.Fatalf("failed to seed exercises: %s", err)
	}

	exercises, err := repo.ListForUser(ctx, *userID)
	if err != nil {
		log.Fatalf("failed to list exercises: %s", err)
	}
	log.WithField("user_id", *userID).Infof("user library has %d exercises", len(exercises))
}
