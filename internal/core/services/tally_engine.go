package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

const invalidateAttempts = 3

type TallyEngine struct {
	registry ports.ElectionRegistry
	roster   ports.CandidateRoster
	ballots  ports.BallotStore
	cache    ports.TallyCache
	clock    ports.Clock
	logger   *slog.Logger
}

// NewTallyEngine builds an engine. cache may be nil, in which case every call
// recomputes from the ballot store.
func NewTallyEngine(
	registry ports.ElectionRegistry,
	roster ports.CandidateRoster,
	ballots ports.BallotStore,
	cache ports.TallyCache,
	clock ports.Clock,
	logger *slog.Logger,
) *TallyEngine {
	return &TallyEngine{
		registry: registry,
		roster:   roster,
		ballots:  ballots,
		cache:    cache,
		clock:    clock,
		logger:   resolveLogger(logger),
	}
}

func (e *TallyEngine) Compute(ctx context.Context, electionID uuid.UUID, eligibleVoters int64) (*domain.TallyResult, error) {
	var (
		generation uint64
		cacheable  bool
	)
	if e.cache != nil {
		cached, ok, err := e.cache.Get(ctx, electionID)
		if err != nil {
			e.logger.Warn("tally cache read failed", "election_id", electionID, "error", err)
		} else if ok {
			result := cached.WithTurnout(eligibleVoters)
			return &result, nil
		}

		// The generation must be read before the snapshot so that an
		// invalidation racing with this computation discards our Put.
		generation, err = e.cache.Generation(ctx, electionID)
		if err != nil {
			e.logger.Warn("tally cache generation read failed", "election_id", electionID, "error", err)
		} else {
			cacheable = true
		}
	}

	election, err := e.registry.Get(ctx, electionID)
	if err != nil {
		return nil, err
	}
	candidates, err := e.roster.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	counts, err := e.ballots.Counts(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ballot counts: %w", err)
	}

	computed := Tally(election, candidates, counts, e.clock.Now())

	if cacheable {
		if err := e.cache.Put(ctx, electionID, generation, computed); err != nil {
			e.logger.Warn("tally cache write failed", "election_id", electionID, "error", err)
		}
	}

	result := computed.WithTurnout(eligibleVoters)
	return &result, nil
}

// Invalidate drops any cached result for the election, retrying cache
// failures with exponential backoff.
func (e *TallyEngine) Invalidate(ctx context.Context, electionID uuid.UUID) error {
	if e.cache == nil {
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), invalidateAttempts),
		ctx,
	)
	return backoff.Retry(func() error {
		return e.cache.Invalidate(ctx, electionID)
	}, policy)
}

// Tally ranks candidates by votes. Candidates with equal votes share a rank
// and keep their roster order. Winners are only flagged for ended elections
// with at least one ballot, and every candidate tied for the lead is one.
func Tally(election *domain.Election, candidates []*domain.Candidate, counts map[uuid.UUID]int64, now time.Time) *domain.TallyResult {
	result := &domain.TallyResult{
		ElectionID: election.ID,
		Title:      election.Title,
		Status:     election.Status,
		IsFinal:    election.Status == domain.StatusEnded,
		Candidates: make([]domain.CandidateTally, 0, len(candidates)),
		Winners:    make([]uuid.UUID, 0),
		ComputedAt: now,
	}

	for _, c := range candidates {
		votes := counts[c.ID]
		result.TotalCast += votes
		result.Candidates = append(result.Candidates, domain.CandidateTally{
			CandidateID: c.ID,
			Name:        c.Name,
			Tag:         c.Tag,
			Votes:       votes,
		})
	}

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Votes > result.Candidates[j].Votes
	})

	for i := range result.Candidates {
		row := &result.Candidates[i]
		if result.TotalCast > 0 {
			row.Percentage = float64(row.Votes) / float64(result.TotalCast) * 100
		}
		if i > 0 && row.Votes == result.Candidates[i-1].Votes {
			row.Rank = result.Candidates[i-1].Rank
		} else {
			row.Rank = i + 1
		}
	}

	if result.IsFinal && result.TotalCast > 0 {
		for i := range result.Candidates {
			row := &result.Candidates[i]
			if row.Rank != 1 {
				break
			}
			row.IsWinner = true
			result.Winners = append(result.Winners, row.CandidateID)
		}
	}

	return result
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
