package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/schoolvote/internal/app"
	"github.com/vncsmyrnk/schoolvote/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Println(err)
	}
	cfg, err := config.Load("electioncloser", os.Args[1:], os.Environ())
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseType == "memory" {
		log.Fatal("electioncloser needs a shared database; set DATABASE_TYPE to sqlite or postgres")
	}

	level, _ := cfg.SlogLevel()
	logger := app.NewLogger(os.Stdout, level)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	module, closeStorage, err := app.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	logger.Info("closing expired elections")

	closed, err := module.Schedule.CloseExpired(ctx)
	if err != nil {
		log.Fatalf("Error closing elections (%d closed): %v", closed, err)
	}

	logger.Info("expired elections closed", "closed", closed)
}
