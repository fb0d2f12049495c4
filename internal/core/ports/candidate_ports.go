package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

type CandidateRepository interface {
	// AddToDraft stores the candidate and assigns its roster position, but only
	// while the owning election is still in draft.
	AddToDraft(ctx context.Context, candidate *domain.Candidate) error
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error)
	Exists(ctx context.Context, electionID, candidateID uuid.UUID) (bool, error)
	CountAll(ctx context.Context) (int, error)
}

type AddCandidateInput struct {
	ElectionID uuid.UUID
	Name       string
	Platform   string
	Tag        string
}

type CandidateRoster interface {
	AddCandidate(ctx context.Context, input AddCandidateInput) (*domain.Candidate, error)
	ListCandidates(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error)
	Exists(ctx context.Context, electionID, candidateID uuid.UUID) (bool, error)
	CountAll(ctx context.Context) (int, error)
}
