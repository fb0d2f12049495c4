package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

type cacheEntry struct {
	generation uint64
	result     domain.TallyResult
}

// TallyCache is a process-local generation-checked result cache.
type TallyCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]cacheEntry
	generations map[uuid.UUID]uint64
}

func NewTallyCache() *TallyCache {
	return &TallyCache{
		entries:     make(map[uuid.UUID]cacheEntry),
		generations: make(map[uuid.UUID]uint64),
	}
}

func (c *TallyCache) Get(_ context.Context, electionID uuid.UUID) (*domain.TallyResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[electionID]
	if !ok || entry.generation != c.generations[electionID] {
		return nil, false, nil
	}
	result := cloneResult(entry.result)
	return &result, true, nil
}

func (c *TallyCache) Generation(_ context.Context, electionID uuid.UUID) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[electionID], nil
}

func (c *TallyCache) Put(_ context.Context, electionID uuid.UUID, generation uint64, result *domain.TallyResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[electionID] != generation {
		return nil
	}
	c.entries[electionID] = cacheEntry{generation: generation, result: cloneResult(*result)}
	return nil
}

func (c *TallyCache) Invalidate(_ context.Context, electionID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[electionID]++
	delete(c.entries, electionID)
	return nil
}

func cloneResult(r domain.TallyResult) domain.TallyResult {
	candidates := make([]domain.CandidateTally, len(r.Candidates))
	copy(candidates, r.Candidates)
	winners := make([]uuid.UUID, len(r.Winners))
	copy(winners, r.Winners)

	r.Candidates = candidates
	r.Winners = winners
	return r
}
