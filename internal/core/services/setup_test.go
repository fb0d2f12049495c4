package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/schoolvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	store    *memory.Store
	cache    ports.TallyCache
	clock    *fakeClock
	registry *ElectionRegistry
	roster   *CandidateRoster
	tally    *TallyEngine
	service  *ElectionService
}

type envOption func(*ElectionServiceOptions, *ports.TallyCache)

func withEnforcedSchedule() envOption {
	return func(opts *ElectionServiceOptions, _ *ports.TallyCache) {
		opts.EnforceSchedule = true
	}
}

func withCache(cache ports.TallyCache) envOption {
	return func(_ *ElectionServiceOptions, c *ports.TallyCache) {
		*c = cache
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T, options ...envOption) *testEnv {
	t.Helper()

	opts := ElectionServiceOptions{Logger: quietLogger()}
	var cache ports.TallyCache = memory.NewTallyCache()
	for _, option := range options {
		option(&opts, &cache)
	}

	store := memory.NewStore()
	clock := newFakeClock()
	registry := NewElectionRegistry(store, clock)
	roster := NewCandidateRoster(store, clock)
	tally := NewTallyEngine(registry, roster, store, cache, clock, opts.Logger)

	return &testEnv{
		store:    store,
		cache:    cache,
		clock:    clock,
		registry: registry,
		roster:   roster,
		tally:    tally,
		service:  NewElectionService(registry, roster, store, tally, clock, opts),
	}
}

// seed creates a draft election with the named candidates in roster order.
func (env *testEnv) seed(t *testing.T, title string, names ...string) (*domain.Election, []*domain.Candidate) {
	t.Helper()
	ctx := context.Background()

	now := env.clock.Now()
	election, err := env.service.CreateElection(ctx, ports.CreateElectionInput{
		Title:    title,
		StartsAt: now,
		EndsAt:   now.Add(8 * time.Hour),
	})
	require.NoError(t, err)

	candidates := make([]*domain.Candidate, 0, len(names))
	for _, name := range names {
		c, err := env.service.AddCandidate(ctx, ports.AddCandidateInput{ElectionID: election.ID, Name: name})
		require.NoError(t, err)
		candidates = append(candidates, c)
	}
	return election, candidates
}

func (env *testEnv) open(t *testing.T, election *domain.Election) {
	t.Helper()
	_, err := env.service.OpenElection(context.Background(), election.ID)
	require.NoError(t, err)
}

func (env *testEnv) cast(election *domain.Election, candidate *domain.Candidate, voter string) error {
	_, err := env.service.CastVote(context.Background(), ports.VoteInput{
		ElectionID:  election.ID,
		CandidateID: candidate.ID,
		VoterID:     voter,
	})
	return err
}
