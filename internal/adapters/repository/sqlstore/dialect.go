package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type errorKind int

const (
	kindOther errorKind = iota
	kindUniqueViolation
	kindForeignKeyViolation
	kindTransient
)

// Dialect carries what differs between the supported SQL engines: driver
// name, row locking clauses and driver error classification.
type Dialect struct {
	Name       string
	DriverName string

	shareLock  string
	updateLock string
	classify   func(error) errorKind
}

var Postgres = Dialect{
	Name:       "postgres",
	DriverName: "postgres",
	shareLock:  " FOR SHARE",
	updateLock: " FOR UPDATE",
	classify:   classifyPostgres,
}

// SQLite has no row locks; writers are serialized by the database file lock.
var SQLite = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",
	classify:   classifySQLite,
}

// DialectFor resolves a DATABASE_TYPE value.
func DialectFor(databaseType string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(databaseType)) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

func classifyPostgres(err error) errorKind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return kindUniqueViolation
		case pqErr.Code == "23503":
			return kindForeignKeyViolation
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "53":
			return kindTransient
		case pqErr.Code == "40001", pqErr.Code == "40P01", pqErr.Code == "57P01":
			return kindTransient
		}
		return kindOther
	}
	return classifyConnection(err)
}

func classifySQLite(err error) errorKind {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return kindUniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return kindForeignKeyViolation
		}
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return kindTransient
		case sqlite3.SQLITE_CONSTRAINT:
			// primary result code only, fall back to the message
			switch msg := sqliteErr.Error(); {
			case strings.Contains(msg, "UNIQUE constraint failed"):
				return kindUniqueViolation
			case strings.Contains(msg, "FOREIGN KEY constraint failed"):
				return kindForeignKeyViolation
			}
		}
		return kindOther
	}
	return classifyConnection(err)
}

func classifyConnection(err error) errorKind {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return kindTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return kindTransient
	}
	return kindOther
}

// wrap annotates a driver error with the operation that failed. Errors the
// caller may retry also match domain.ErrTransient.
func (d Dialect) wrap(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if d.classify(err) == kindTransient {
		return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrTransient, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
