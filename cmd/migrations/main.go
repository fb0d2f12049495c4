package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/schoolvote/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/schoolvote/internal/app"
	"github.com/vncsmyrnk/schoolvote/internal/config"
)

// Usage: migrations <name|all> [-t postgres|sqlite] [-d url]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name is required.")
	}
	migrationName := os.Args[1]

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("Error loading .env file")
	}
	cfg, err := config.Load("migrations", os.Args[2:], os.Environ())
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseType == "memory" {
		log.Fatal("the memory store has no migrations; set DATABASE_TYPE to sqlite or postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, dialect, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if migrationName == "all" {
		if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		fmt.Println("All migrations executed successfully.")
		return
	}

	fileName, content, err := sqlstore.MigrationContent(dialect, migrationName)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		log.Fatalf("Failed to execute SQL file: %v", err)
	}

	fmt.Printf("Migration file %s executed successfully.\n", fileName)
}
