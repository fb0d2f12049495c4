package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

const electionColumns = `id, title, description, starts_at, ends_at, status, created_at, updated_at`

type ElectionRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewElectionRepository(db *sql.DB, dialect Dialect) *ElectionRepository {
	return &ElectionRepository{
		db:      db,
		dialect: dialect,
	}
}

func (r *ElectionRepository) Create(ctx context.Context, election *domain.Election) error {
	query := `
		INSERT INTO elections (` + electionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		election.ID, election.Title, election.Description,
		election.StartsAt.UTC(), election.EndsAt.UTC(), election.Status,
		election.CreatedAt.UTC(), election.UpdatedAt.UTC(),
	)
	if err != nil {
		if r.dialect.classify(err) == kindUniqueViolation {
			return domain.Validationf("election %s already exists", election.ID)
		}
		return r.dialect.wrap("insert election", err)
	}
	return nil
}

func (r *ElectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return getElection(ctx, r.db, r.dialect, id, "")
}

func (r *ElectionRepository) List(ctx context.Context) ([]*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections ORDER BY created_at, id`
	return r.query(ctx, query)
}

// ListExpired compares end times in Go; SQLite stores timestamps as text and
// cannot order them reliably.
func (r *ElectionRepository) ListExpired(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE status = $1 ORDER BY ends_at, id`
	active, err := r.query(ctx, query, domain.StatusActive)
	if err != nil {
		return nil, err
	}

	var expired []*domain.Election
	for _, e := range active {
		if !now.Before(e.EndsAt) {
			expired = append(expired, e)
		}
	}
	return expired, nil
}

func (r *ElectionRepository) CompareAndSwapStatus(ctx context.Context, id uuid.UUID, from, to domain.ElectionStatus, at time.Time) (*domain.Election, bool, error) {
	query := `
		UPDATE elections SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, to, at.UTC(), id, from)
	if err != nil {
		return nil, false, r.dialect.wrap("update election status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, r.dialect.wrap("read affected rows", err)
	}

	election, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return election, affected == 1, nil
}

func (r *ElectionRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Election, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.dialect.wrap("query elections", err)
	}
	defer rows.Close()

	elections := []*domain.Election{}
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, r.dialect.wrap("scan election", err)
		}
		elections = append(elections, election)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dialect.wrap("iterate elections", err)
	}
	return elections, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getElection reads one election through a *sql.DB or *sql.Tx, optionally
// appending a row lock clause.
func getElection(ctx context.Context, q queryRower, d Dialect, id uuid.UUID, lock string) (*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE id = $1` + lock

	election, err := scanElection(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, d.wrap("get election", err)
	}
	return election, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanElection(s scanner) (*domain.Election, error) {
	var election domain.Election
	err := s.Scan(
		&election.ID, &election.Title, &election.Description,
		&election.StartsAt, &election.EndsAt, &election.Status,
		&election.CreatedAt, &election.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	election.StartsAt = election.StartsAt.UTC()
	election.EndsAt = election.EndsAt.UTC()
	election.CreatedAt = election.CreatedAt.UTC()
	election.UpdatedAt = election.UpdatedAt.UTC()
	return &election, nil
}
