package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/app"
	"github.com/vncsmyrnk/schoolvote/internal/config"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Println(err)
	}

	var electionIDStr string
	var eligible int64
	cfg, err := config.Load("tallyreport", os.Args[1:], os.Environ(), func(fs *flag.FlagSet) {
		fs.StringVar(&electionIDStr, "election", "", "Election ID (all elections when empty)")
		fs.Int64Var(&eligible, "eligible", 0, "Eligible voter count used for turnout")
	})
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseType == "memory" {
		log.Fatal("tallyreport reads a shared database; set DATABASE_TYPE to sqlite or postgres")
	}

	level, _ := cfg.SlogLevel()
	logger := app.NewLogger(os.Stderr, level)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	module, closeStorage, err := app.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	var ids []uuid.UUID
	if electionIDStr != "" {
		id, err := uuid.Parse(electionIDStr)
		if err != nil {
			log.Fatalf("invalid election id: %v", err)
		}
		ids = append(ids, id)
	} else {
		elections, err := module.Service.ListElections(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range elections {
			ids = append(ids, e.ID)
		}
	}

	now := time.Now()
	for _, id := range ids {
		election, err := module.Service.GetElection(ctx, id)
		if err != nil {
			log.Fatal(err)
		}
		result, err := module.Service.GetResults(ctx, ports.ResultsInput{ElectionID: id, EligibleVoters: eligible})
		if err != nil {
			log.Fatal(err)
		}
		if err := writeReport(os.Stdout, election, result, now); err != nil {
			log.Fatal(err)
		}
	}
}
