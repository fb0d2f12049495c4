package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type backend struct {
	name    string
	db      *sql.DB
	dialect Dialect
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}
	return pgContainer, connStr, nil
}

func newSQLiteBackend(t *testing.T) backend {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "schoolvote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db, SQLite))
	return backend{name: "sqlite", db: db, dialect: SQLite}
}

func newPostgresBackend(t *testing.T) backend {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	db, err := Open(ctx, Postgres, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db, Postgres))
	// applying twice must be harmless
	require.NoError(t, Migrate(ctx, db, Postgres))
	return backend{name: "postgres", db: db, dialect: Postgres}
}

// backends always yields SQLite and adds Postgres outside of -short runs.
func backends(t *testing.T) []backend {
	t.Helper()
	list := []backend{newSQLiteBackend(t)}
	if !testing.Short() {
		list = append(list, newPostgresBackend(t))
	}
	return list
}
