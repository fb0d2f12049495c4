package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newElection(t *testing.T, store *Store, status domain.ElectionStatus) *domain.Election {
	t.Helper()
	election := &domain.Election{
		ID:        uuid.New(),
		Title:     "Council",
		StartsAt:  testNow,
		EndsAt:    testNow.Add(time.Hour),
		Status:    domain.StatusDraft,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	require.NoError(t, store.Create(context.Background(), election))
	if status != domain.StatusDraft {
		_, ok, err := store.CompareAndSwapStatus(context.Background(), election.ID, domain.StatusDraft, status, testNow)
		require.NoError(t, err)
		require.True(t, ok)
		election.Status = status
	}
	return election
}

func addCandidate(t *testing.T, store *Store, electionID uuid.UUID, name string) *domain.Candidate {
	t.Helper()
	candidate := &domain.Candidate{ID: uuid.New(), ElectionID: electionID, Name: name, CreatedAt: testNow}
	require.NoError(t, store.AddToDraft(context.Background(), candidate))
	return candidate
}

func TestStoreElections(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := newElection(t, store, domain.StatusDraft)
	second := newElection(t, store, domain.StatusActive)

	assert.ErrorIs(t, store.Create(ctx, first), domain.ErrValidation)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	got.Title = "changed"
	again, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Council", again.Title, "callers receive copies")

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)

	expired, err := store.ListExpired(ctx, testNow.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, second.ID, expired[0].ID)

	expired, err = store.ListExpired(ctx, testNow)
	require.NoError(t, err)
	assert.Empty(t, expired)
}

func TestStoreCompareAndSwapStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	election := newElection(t, store, domain.StatusDraft)

	later := testNow.Add(time.Minute)
	updated, ok, err := store.CompareAndSwapStatus(ctx, election.ID, domain.StatusDraft, domain.StatusActive, later)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)

	current, ok, err := store.CompareAndSwapStatus(ctx, election.ID, domain.StatusDraft, domain.StatusActive, later)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.StatusActive, current.Status)

	_, _, err = store.CompareAndSwapStatus(ctx, uuid.New(), domain.StatusDraft, domain.StatusActive, later)
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)
}

func TestStoreRoster(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	election := newElection(t, store, domain.StatusDraft)

	alice := addCandidate(t, store, election.ID, "Alice")
	bob := addCandidate(t, store, election.ID, "Bob")
	assert.Equal(t, 1, alice.Position)
	assert.Equal(t, 2, bob.Position)

	roster, err := store.ListByElection(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Alice", roster[0].Name)
	assert.Equal(t, "Bob", roster[1].Name)

	ok, err := store.Exists(ctx, election.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = store.CompareAndSwapStatus(ctx, election.ID, domain.StatusDraft, domain.StatusActive, testNow)
	require.NoError(t, err)

	late := &domain.Candidate{ID: uuid.New(), ElectionID: election.ID, Name: "Late"}
	assert.ErrorIs(t, store.AddToDraft(ctx, late), domain.ErrElectionNotDraft)

	missing := &domain.Candidate{ID: uuid.New(), ElectionID: uuid.New(), Name: "Nobody"}
	assert.ErrorIs(t, store.AddToDraft(ctx, missing), domain.ErrElectionNotFound)

	count, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStoreCast(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	election := newElection(t, store, domain.StatusDraft)
	alice := addCandidate(t, store, election.ID, "Alice")
	bob := addCandidate(t, store, election.ID, "Bob")

	_, err := store.Cast(ctx, election.ID, "S1", alice.ID, testNow)
	assert.ErrorIs(t, err, domain.ErrElectionNotActive)

	_, _, err = store.CompareAndSwapStatus(ctx, election.ID, domain.StatusDraft, domain.StatusActive, testNow)
	require.NoError(t, err)

	ballot, err := store.Cast(ctx, election.ID, "S1", alice.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.Ballot{ElectionID: election.ID, VoterID: "S1", CandidateID: alice.ID, CastAt: testNow}, *ballot)

	_, err = store.Cast(ctx, election.ID, "S1", bob.ID, testNow)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	_, err = store.Cast(ctx, election.ID, "S2", uuid.New(), testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidCandidate)

	_, err = store.Cast(ctx, uuid.New(), "S2", alice.ID, testNow)
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)

	_, err = store.Cast(ctx, election.ID, "S2", bob.ID, testNow)
	require.NoError(t, err)
	_, err = store.Cast(ctx, election.ID, "S3", bob.ID, testNow)
	require.NoError(t, err)

	counts, err := store.Counts(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int64{alice.ID: 1, bob.ID: 2}, counts)

	n, err := store.CountFor(ctx, election.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, err := store.TotalCast(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	voted, err := store.HasVoted(ctx, election.ID, "S3")
	require.NoError(t, err)
	assert.True(t, voted)

	_, _, err = store.CompareAndSwapStatus(ctx, election.ID, domain.StatusActive, domain.StatusEnded, testNow)
	require.NoError(t, err)
	_, err = store.Cast(ctx, election.ID, "S4", bob.ID, testNow)
	assert.ErrorIs(t, err, domain.ErrElectionNotActive)

	all, err := store.TotalAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)
}

func TestStoreUnknownElectionReads(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	id := uuid.New()

	counts, err := store.Counts(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, counts)

	total, err := store.TotalCast(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, total)

	voted, err := store.HasVoted(ctx, id, "S1")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestStoreConcurrentCasts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	election := newElection(t, store, domain.StatusDraft)
	alice := addCandidate(t, store, election.ID, "Alice")
	_, _, err := store.CompareAndSwapStatus(ctx, election.ID, domain.StatusDraft, domain.StatusActive, testNow)
	require.NoError(t, err)

	const voters = 25
	var wg sync.WaitGroup
	for i := range voters {
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.Cast(ctx, election.ID, fmt.Sprintf("S%d", i), alice.ID, testNow)
			}()
		}
	}
	wg.Wait()

	total, err := store.TotalCast(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(voters), total)

	n, err := store.CountFor(ctx, election.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, total, n)
}
