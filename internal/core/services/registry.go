package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type ElectionRegistry struct {
	repo  ports.ElectionRepository
	clock ports.Clock
}

func NewElectionRegistry(repo ports.ElectionRepository, clock ports.Clock) *ElectionRegistry {
	return &ElectionRegistry{
		repo:  repo,
		clock: clock,
	}
}

func (r *ElectionRegistry) Create(ctx context.Context, input ports.CreateElectionInput) (*domain.Election, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Validationf("title is required")
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return nil, domain.Validationf("start and end are required")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, domain.Validationf("end must be after start")
	}

	now := r.clock.Now()
	election := &domain.Election{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		StartsAt:    input.StartsAt.UTC(),
		EndsAt:      input.EndsAt.UTC(),
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.repo.Create(ctx, election); err != nil {
		return nil, err
	}
	return election, nil
}

// Transition advances the election by exactly one step. The stored status is
// swapped only if nobody moved it since it was read.
func (r *ElectionRegistry) Transition(ctx context.Context, id uuid.UUID, target domain.ElectionStatus) (*domain.Election, error) {
	if !target.Valid() {
		return nil, domain.Validationf("unknown status %q", target)
	}

	current, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, target)
	}

	updated, swapped, err := r.repo.CompareAndSwapStatus(ctx, id, current.Status, target, r.clock.Now())
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, updated.Status, target)
	}
	return updated, nil
}

func (r *ElectionRegistry) Get(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *ElectionRegistry) List(ctx context.Context) ([]*domain.Election, error) {
	return r.repo.List(ctx)
}

func (r *ElectionRegistry) ListExpired(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	return r.repo.ListExpired(ctx, now)
}
