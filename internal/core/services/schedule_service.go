package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type ScheduleService struct {
	registry  ports.ElectionRegistry
	elections ports.ElectionService
	clock     ports.Clock
	logger    *slog.Logger
}

func NewScheduleService(registry ports.ElectionRegistry, elections ports.ElectionService, clock ports.Clock, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		registry:  registry,
		elections: elections,
		clock:     clock,
		logger:    resolveLogger(logger),
	}
}

// CloseExpired closes every active election whose end timestamp has passed.
// Elections closed concurrently by an admin are skipped, not reported.
func (s *ScheduleService) CloseExpired(ctx context.Context) (int, error) {
	expired, err := s.registry.ListExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to fetch expired elections: %w", err)
	}

	var (
		wg     sync.WaitGroup
		closed atomic.Int32
	)
	errChan := make(chan error, len(expired))

	for _, election := range expired {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := s.elections.CloseElection(ctx, id)
			switch {
			case err == nil:
				closed.Add(1)
			case errors.Is(err, domain.ErrInvalidTransition):
				s.logger.Info("election already closed", "election_id", id)
			default:
				errChan <- fmt.Errorf("failed to close election %s: %w", id, err)
			}
		}(election.ID)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	return int(closed.Load()), errors.Join(errs...)
}
