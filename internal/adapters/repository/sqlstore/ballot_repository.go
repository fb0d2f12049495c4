package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

// BallotRepository never updates or deletes rows; the schema rejects both.
type BallotRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewBallotRepository(db *sql.DB, dialect Dialect) *BallotRepository {
	return &BallotRepository{
		db:      db,
		dialect: dialect,
	}
}

// Cast share-locks the election row for the duration of the insert, so a
// close either commits before the status read or waits for the ballot. The
// primary key on (election_id, voter_id) decides concurrent duplicates and the
// composite foreign key rejects candidates from other rosters.
func (r *BallotRepository) Cast(ctx context.Context, electionID uuid.UUID, voterID string, candidateID uuid.UUID, now time.Time) (*domain.Ballot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, r.dialect.wrap("begin transaction", err)
	}
	defer tx.Rollback()

	election, err := getElection(ctx, tx, r.dialect, electionID, r.dialect.shareLock)
	if err != nil {
		return nil, err
	}
	if election.Status != domain.StatusActive {
		return nil, domain.ErrElectionNotActive
	}

	ballot := &domain.Ballot{
		ElectionID:  electionID,
		VoterID:     voterID,
		CandidateID: candidateID,
		CastAt:      now.UTC(),
	}

	query := `
		INSERT INTO ballots (election_id, voter_id, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, query, ballot.ElectionID, ballot.VoterID, ballot.CandidateID, ballot.CastAt)
	if err != nil {
		switch r.dialect.classify(err) {
		case kindUniqueViolation:
			return nil, domain.ErrAlreadyVoted
		case kindForeignKeyViolation:
			return nil, domain.ErrInvalidCandidate
		}
		return nil, r.dialect.wrap("insert ballot", err)
	}

	if err := tx.Commit(); err != nil {
		if r.dialect.classify(err) == kindUniqueViolation {
			return nil, domain.ErrAlreadyVoted
		}
		return nil, r.dialect.wrap("commit transaction", err)
	}
	return ballot, nil
}

func (r *BallotRepository) CountFor(ctx context.Context, electionID, candidateID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ballots WHERE election_id = $1 AND candidate_id = $2`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, electionID, candidateID).Scan(&count); err != nil {
		return 0, r.dialect.wrap("count candidate ballots", err)
	}
	return count, nil
}

func (r *BallotRepository) TotalCast(ctx context.Context, electionID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ballots WHERE election_id = $1`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, electionID).Scan(&count); err != nil {
		return 0, r.dialect.wrap("count ballots", err)
	}
	return count, nil
}

func (r *BallotRepository) HasVoted(ctx context.Context, electionID uuid.UUID, voterID string) (bool, error) {
	query := `SELECT 1 FROM ballots WHERE election_id = $1 AND voter_id = $2`
	var exists int
	err := r.db.QueryRowContext(ctx, query, electionID, voterID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, r.dialect.wrap("check existing ballot", err)
	}
	return true, nil
}

// Counts aggregates in a single statement, which reads from one snapshot.
func (r *BallotRepository) Counts(ctx context.Context, electionID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT candidate_id, COUNT(*)
		FROM ballots
		WHERE election_id = $1
		GROUP BY candidate_id
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, r.dialect.wrap("query ballot counts", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var candidateID uuid.UUID
		var count int64
		if err := rows.Scan(&candidateID, &count); err != nil {
			return nil, r.dialect.wrap("scan ballot count", err)
		}
		counts[candidateID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, r.dialect.wrap("iterate ballot counts", err)
	}
	return counts, nil
}

func (r *BallotRepository) TotalAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ballots`).Scan(&total); err != nil {
		return 0, r.dialect.wrap("count all ballots", err)
	}
	return total, nil
}
