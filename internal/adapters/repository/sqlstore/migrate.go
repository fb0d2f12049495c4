package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations lists the migration files for the dialect in execution order.
func Migrations(d Dialect) ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	suffix := "." + d.Name + ".up.sql"
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// MigrationContent finds a single migration by (partial) name, e.g.
// "create_ballots" or "0002".
func MigrationContent(d Dialect, migrationName string) (string, []byte, error) {
	names, err := Migrations(d)
	if err != nil {
		return "", nil, err
	}

	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s.*\.%s\.up\.sql$`, regexp.QuoteMeta(migrationName), d.Name))
	if err != nil {
		return "", nil, fmt.Errorf("invalid migration name: %w", err)
	}

	for _, name := range names {
		if pattern.MatchString(name) {
			content, err := migrationFiles.ReadFile("migrations/" + name)
			if err != nil {
				return "", nil, fmt.Errorf("failed to read migration %s: %w", name, err)
			}
			return name, content, nil
		}
	}
	return "", nil, fmt.Errorf("migration %q not found for %s", migrationName, d.Name)
}

// Migrate applies every migration for the dialect. The scripts are
// idempotent, so running them against an existing schema is a no-op.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	names, err := Migrations(d)
	if err != nil {
		return err
	}

	for _, name := range names {
		content, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return d.wrap("apply migration "+name, err)
		}
	}
	return nil
}
