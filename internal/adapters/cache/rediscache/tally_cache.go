package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

const keyPrefix = "schoolvote:tally:"

// TallyCache stores computed tallies in Redis next to a per-election
// generation counter. Invalidate bumps the counter, and Put only writes when
// the counter still matches the generation the tally was computed from.
type TallyCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

type entry struct {
	Generation uint64             `json:"generation"`
	Result     domain.TallyResult `json:"result"`
}

func NewTallyCache(client redis.UniversalClient, ttl time.Duration) *TallyCache {
	return &TallyCache{
		client: client,
		ttl:    ttl,
	}
}

func generationKey(id uuid.UUID) string {
	return keyPrefix + id.String() + ":gen"
}

func resultKey(id uuid.UUID) string {
	return keyPrefix + id.String() + ":result"
}

func (c *TallyCache) Get(ctx context.Context, electionID uuid.UUID) (*domain.TallyResult, bool, error) {
	values, err := c.client.MGet(ctx, generationKey(electionID), resultKey(electionID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached tally: %w: %w", domain.ErrTransient, err)
	}

	generation, err := parseGeneration(values[0])
	if err != nil {
		return nil, false, err
	}
	raw, ok := values[1].(string)
	if !ok {
		return nil, false, nil
	}

	var cached entry
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached tally: %w", err)
	}
	if cached.Generation != generation {
		return nil, false, nil
	}
	return &cached.Result, true, nil
}

func (c *TallyCache) Generation(ctx context.Context, electionID uuid.UUID) (uint64, error) {
	value, err := c.client.Get(ctx, generationKey(electionID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read tally generation: %w: %w", domain.ErrTransient, err)
	}
	return value, nil
}

func (c *TallyCache) Put(ctx context.Context, electionID uuid.UUID, generation uint64, result *domain.TallyResult) error {
	payload, err := json.Marshal(entry{Generation: generation, Result: *result})
	if err != nil {
		return fmt.Errorf("failed to encode tally: %w", err)
	}

	genKey := generationKey(electionID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, resultKey(electionID), payload, c.ttl)
			return nil
		})
		return err
	}, genKey)

	// the generation moved while writing; the stale tally is dropped
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to store tally: %w: %w", domain.ErrTransient, err)
	}
	return nil
}

func (c *TallyCache) Invalidate(ctx context.Context, electionID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(electionID))
		pipe.Del(ctx, resultKey(electionID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate tally: %w: %w", domain.ErrTransient, err)
	}
	return nil
}

func parseGeneration(value any) (uint64, error) {
	raw, ok := value.(string)
	if !ok {
		return 0, nil
	}
	generation, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse tally generation %q: %w", raw, err)
	}
	return generation, nil
}
