package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type CandidateRoster struct {
	repo  ports.CandidateRepository
	clock ports.Clock
}

func NewCandidateRoster(repo ports.CandidateRepository, clock ports.Clock) *CandidateRoster {
	return &CandidateRoster{
		repo:  repo,
		clock: clock,
	}
}

func (r *CandidateRoster) AddCandidate(ctx context.Context, input ports.AddCandidateInput) (*domain.Candidate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Validationf("candidate name is required")
	}

	candidate := &domain.Candidate{
		ID:         uuid.New(),
		ElectionID: input.ElectionID,
		Name:       name,
		Platform:   strings.TrimSpace(input.Platform),
		Tag:        strings.TrimSpace(input.Tag),
		CreatedAt:  r.clock.Now(),
	}

	if err := r.repo.AddToDraft(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (r *CandidateRoster) ListCandidates(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error) {
	return r.repo.ListByElection(ctx, electionID)
}

func (r *CandidateRoster) Exists(ctx context.Context, electionID, candidateID uuid.UUID) (bool, error) {
	return r.repo.Exists(ctx, electionID, candidateID)
}

func (r *CandidateRoster) CountAll(ctx context.Context) (int, error) {
	return r.repo.CountAll(ctx)
}
