package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/server"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/store"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	file := flag.String("file", "", "Workout log text file (required)")
	start := flag.String("start", time.Now().Format(domain.DateLayout), "Date of day 1, YYYY-MM-DD")
	spw := flag.Float64("spw", 3.5, "Training sessions per week")
	breakWeeks := flag.Int("break", 2, "Break weeks assumed after the third week")
	userID := flag.String("user", "", "User ID to import the workouts for")
	dryRun := flag.Bool("dry-run", false, "Print the parsed workouts without saving them")
	flag.Parse()

	if *file == "" || (*userID == "" && !*dryRun) {
		fmt.Println("Usage: import_log -file <PATH> [-start YYYY-MM-DD] [-spw 3.5] [-break 2] (-user <USER_ID> | -dry-run)")
		fmt.Println("\nParses a free-text workout log and adds the workouts to the user's history.")
		os.Exit(1)
	}

	text, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read %s: %s", *file, err)
	}

	req := service.ImportRequest{
		Text:            string(text),
		StartDate:       *start,
		SessionsPerWeek: spw,
		BreakWeeks:      breakWeeks,
		DryRun:          *dryRun,
	}

	// Dry runs never touch the remote store
	remotes := store.Remotes{}
	ctx := context.Background()
	if !*dryRun {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("failed to load config: %s", err)
		}

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI).SetTimeout(cfg.MongoDB.Timeout))
		if err != nil {
			log.Fatalf("failed to connect to mongo: %s", err)
		}
		defer client.Disconnect(context.Background())

		remotes = server.NewRemotes(client.Database(cfg.MongoDB.Database))
		ctx = domain.WithUserID(ctx, *userID)
	}

	// A throwaway cache: the store mirrors each imported workout to the remote
	st := store.New(repository.NewMemoryLocalCache(8), domain.ContextUser{}, remotes, store.Options{})
	importService := service.NewImportService(st, domain.ContextUser{}, nil, service.ImportOptions{})

	result, err := importService.Import(ctx, req)
	if err != nil {
		log.Fatalf("import failed: %s", err)
	}
	st.Wait()

	if *dryRun {
		out, _ := json.MarshalIndent(result.Parsed, "", "  ")
		fmt.Println(string(out))
		return
	}
	log.WithField("user_id", *userID).Infof("imported %d workouts", result.Imported)
}
