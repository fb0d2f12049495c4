package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

// BallotStore is append-only. Cast is the single write path and must be
// atomic per (election, voter) key.
type BallotStore interface {
	Cast(ctx context.Context, electionID uuid.UUID, voterID string, candidateID uuid.UUID, now time.Time) (*domain.Ballot, error)
	CountFor(ctx context.Context, electionID, candidateID uuid.UUID) (int64, error)
	TotalCast(ctx context.Context, electionID uuid.UUID) (int64, error)
	HasVoted(ctx context.Context, electionID uuid.UUID, voterID string) (bool, error)
	// Counts reads every candidate's count for the election from one snapshot.
	Counts(ctx context.Context, electionID uuid.UUID) (map[uuid.UUID]int64, error)
	TotalAll(ctx context.Context) (int64, error)
}

type VoteInput struct {
	ElectionID  uuid.UUID
	CandidateID uuid.UUID
	VoterID     string
}
