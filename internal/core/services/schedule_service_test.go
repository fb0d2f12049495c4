package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

func TestCloseExpired(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	schedule := NewScheduleService(env.registry, env.service, env.clock, quietLogger())

	expiring, _ := env.seed(t, "Expiring", "Alice")
	env.open(t, expiring)

	env.clock.Advance(time.Hour)
	later, _ := env.seed(t, "Later", "Bob")
	env.open(t, later)
	draft, _ := env.seed(t, "Draft", "Carol")

	closed, err := schedule.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, closed, "nothing has reached its end yet")

	env.clock.Advance(7 * time.Hour)
	closed, err = schedule.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	closed, err = schedule.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, closed, "a second run finds nothing left")

	statuses := map[string]domain.ElectionStatus{}
	for _, e := range []*domain.Election{expiring, later, draft} {
		stored, err := env.service.GetElection(ctx, e.ID)
		require.NoError(t, err)
		statuses[stored.Title] = stored.Status
	}
	assert.Equal(t, map[string]domain.ElectionStatus{
		"Expiring": domain.StatusEnded,
		"Later":    domain.StatusActive,
		"Draft":    domain.StatusDraft,
	}, statuses)

	env.clock.Advance(time.Hour)
	closed, err = schedule.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
}

func TestCloseExpiredFinalizesResults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	schedule := NewScheduleService(env.registry, env.service, env.clock, quietLogger())

	election, c := env.seed(t, "Council", "Alice", "Bob")
	env.open(t, election)
	require.NoError(t, env.cast(election, c[1], "S1"))

	provisional, err := env.tally.Compute(ctx, election.ID, 0)
	require.NoError(t, err)
	assert.False(t, provisional.IsFinal)

	env.clock.Advance(8 * time.Hour)
	closed, err := schedule.CloseExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	final, err := env.tally.Compute(ctx, election.ID, 0)
	require.NoError(t, err)
	assert.True(t, final.IsFinal)
	assert.Equal(t, c[1].ID, final.Winners[0])
}
