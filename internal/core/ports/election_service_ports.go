package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

type ResultsInput struct {
	ElectionID     uuid.UUID
	EligibleVoters int64
}

// ElectionService is the only entry point through which ballots are cast.
type ElectionService interface {
	CreateElection(ctx context.Context, input CreateElectionInput) (*domain.Election, error)
	GetElection(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	ListElections(ctx context.Context) ([]*domain.Election, error)
	AddCandidate(ctx context.Context, input AddCandidateInput) (*domain.Candidate, error)
	ListCandidates(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error)
	OpenElection(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	CloseElection(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	CastVote(ctx context.Context, input VoteInput) (*domain.Ballot, error)
	HasVoted(ctx context.Context, electionID uuid.UUID, voterID string) (bool, error)
	GetResults(ctx context.Context, input ResultsInput) (*domain.TallyResult, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

// ScheduleService closes active elections whose end timestamp has passed.
type ScheduleService interface {
	CloseExpired(ctx context.Context) (int, error)
}

type Clock interface {
	Now() time.Time
}
