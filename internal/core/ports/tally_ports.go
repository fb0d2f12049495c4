package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

// TallyCache stores computed results under a per-election generation. Put is
// ignored when the generation moved since it was read, so a result computed
// before an invalidation never overwrites it.
type TallyCache interface {
	Get(ctx context.Context, electionID uuid.UUID) (*domain.TallyResult, bool, error)
	Generation(ctx context.Context, electionID uuid.UUID) (uint64, error)
	Put(ctx context.Context, electionID uuid.UUID, generation uint64, result *domain.TallyResult) error
	Invalidate(ctx context.Context, electionID uuid.UUID) error
}

type TallyEngine interface {
	Compute(ctx context.Context, electionID uuid.UUID, eligibleVoters int64) (*domain.TallyResult, error)
	Invalidate(ctx context.Context, electionID uuid.UUID) error
}
