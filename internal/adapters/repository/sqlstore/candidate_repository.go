package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

type CandidateRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewCandidateRepository(db *sql.DB, dialect Dialect) *CandidateRepository {
	return &CandidateRepository{
		db:      db,
		dialect: dialect,
	}
}

// AddToDraft locks the election row so that a concurrent open cannot slip
// between the status check and the insert.
func (r *CandidateRepository) AddToDraft(ctx context.Context, candidate *domain.Candidate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.dialect.wrap("begin transaction", err)
	}
	defer tx.Rollback()

	election, err := getElection(ctx, tx, r.dialect, candidate.ElectionID, r.dialect.updateLock)
	if err != nil {
		return err
	}
	if election.Status != domain.StatusDraft {
		return domain.ErrElectionNotDraft
	}

	var position int
	queryPosition := `SELECT COALESCE(MAX(position), 0) + 1 FROM candidates WHERE election_id = $1`
	if err := tx.QueryRowContext(ctx, queryPosition, candidate.ElectionID).Scan(&position); err != nil {
		return r.dialect.wrap("compute candidate position", err)
	}

	queryInsert := `
		INSERT INTO candidates (id, election_id, name, platform, tag, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, queryInsert,
		candidate.ID, candidate.ElectionID, candidate.Name, candidate.Platform,
		candidate.Tag, position, candidate.CreatedAt.UTC(),
	)
	if err != nil {
		return r.dialect.wrap("insert candidate", err)
	}

	if err := tx.Commit(); err != nil {
		return r.dialect.wrap("commit transaction", err)
	}

	candidate.Position = position
	return nil
}

func (r *CandidateRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error) {
	query := `
		SELECT id, election_id, name, platform, tag, position, created_at
		FROM candidates
		WHERE election_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, r.dialect.wrap("query candidates", err)
	}
	defer rows.Close()

	candidates := []*domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Platform, &c.Tag, &c.Position, &c.CreatedAt); err != nil {
			return nil, r.dialect.wrap("scan candidate", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dialect.wrap("iterate candidates", err)
	}
	return candidates, nil
}

func (r *CandidateRepository) Exists(ctx context.Context, electionID, candidateID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM candidates WHERE election_id = $1 AND id = $2`
	var exists int
	err := r.db.QueryRowContext(ctx, query, electionID, candidateID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, r.dialect.wrap("check candidate", err)
	}
	return true, nil
}

func (r *CandidateRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&total); err != nil {
		return 0, r.dialect.wrap("count candidates", err)
	}
	return total, nil
}
