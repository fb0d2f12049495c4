package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

type ElectionRepository interface {
	Create(ctx context.Context, election *domain.Election) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	List(ctx context.Context) ([]*domain.Election, error)
	ListExpired(ctx context.Context, now time.Time) ([]*domain.Election, error)
	// CompareAndSwapStatus moves the election to `to` only if its stored status
	// is still `from`. It returns the stored election after the attempt and
	// whether the swap happened.
	CompareAndSwapStatus(ctx context.Context, id uuid.UUID, from, to domain.ElectionStatus, at time.Time) (*domain.Election, bool, error)
}

type CreateElectionInput struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
}

type ElectionRegistry interface {
	Create(ctx context.Context, input CreateElectionInput) (*domain.Election, error)
	Transition(ctx context.Context, id uuid.UUID, target domain.ElectionStatus) (*domain.Election, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	List(ctx context.Context) ([]*domain.Election, error)
	ListExpired(ctx context.Context, now time.Time) ([]*domain.Election, error)
}
