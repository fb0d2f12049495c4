package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const pingAttempts = 5

// Open connects to the database and waits for it to answer a ping.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if d.Name == SQLite.Name {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Name, err)
	}

	if d.Name == SQLite.Name {
		// a single connection keeps writers from tripping over SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	ping := func() error {
		return db.PingContext(ctx)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pingAttempts), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		db.Close()
		return nil, d.wrap("ping "+d.Name+" database", err)
	}

	return db, nil
}

func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "schoolvote.db"
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
