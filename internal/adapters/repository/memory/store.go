package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

// Store keeps elections, rosters and ballots in process memory. The store
// lock guards election state and rosters; each election owns a ballot box with
// its own lock, so casts in different elections do not contend.
type Store struct {
	mu         sync.RWMutex
	elections  map[uuid.UUID]*domain.Election
	order      []uuid.UUID
	candidates map[uuid.UUID][]*domain.Candidate
	boxes      map[uuid.UUID]*ballotBox
}

type ballotBox struct {
	mu      sync.RWMutex
	ballots map[string]domain.Ballot
	counts  map[uuid.UUID]int64
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[uuid.UUID]*domain.Election),
		candidates: make(map[uuid.UUID][]*domain.Candidate),
		boxes:      make(map[uuid.UUID]*ballotBox),
	}
}

func (s *Store) Create(_ context.Context, election *domain.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.elections[election.ID]; ok {
		return domain.Validationf("election %s already exists", election.ID)
	}
	stored := *election
	s.elections[election.ID] = &stored
	s.order = append(s.order, election.ID)
	s.boxes[election.ID] = &ballotBox{
		ballots: make(map[string]domain.Ballot),
		counts:  make(map[uuid.UUID]int64),
	}
	return nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	election, ok := s.elections[id]
	if !ok {
		return nil, domain.ErrElectionNotFound
	}
	copied := *election
	return &copied, nil
}

func (s *Store) List(_ context.Context) ([]*domain.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elections := make([]*domain.Election, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.elections[id]
		elections = append(elections, &copied)
	}
	return elections, nil
}

func (s *Store) ListExpired(_ context.Context, now time.Time) ([]*domain.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []*domain.Election
	for _, id := range s.order {
		election := s.elections[id]
		if election.Status == domain.StatusActive && !now.Before(election.EndsAt) {
			copied := *election
			expired = append(expired, &copied)
		}
	}
	return expired, nil
}

func (s *Store) CompareAndSwapStatus(_ context.Context, id uuid.UUID, from, to domain.ElectionStatus, at time.Time) (*domain.Election, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.elections[id]
	if !ok {
		return nil, false, domain.ErrElectionNotFound
	}
	if election.Status != from {
		copied := *election
		return &copied, false, nil
	}
	election.Status = to
	election.UpdatedAt = at
	copied := *election
	return &copied, true, nil
}

func (s *Store) AddToDraft(_ context.Context, candidate *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.elections[candidate.ElectionID]
	if !ok {
		return domain.ErrElectionNotFound
	}
	if election.Status != domain.StatusDraft {
		return domain.ErrElectionNotDraft
	}

	roster := s.candidates[candidate.ElectionID]
	candidate.Position = len(roster) + 1
	stored := *candidate
	s.candidates[candidate.ElectionID] = append(roster, &stored)
	return nil
}

func (s *Store) ListByElection(_ context.Context, electionID uuid.UUID) ([]*domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := s.candidates[electionID]
	candidates := make([]*domain.Candidate, 0, len(roster))
	for _, c := range roster {
		copied := *c
		candidates = append(candidates, &copied)
	}
	return candidates, nil
}

func (s *Store) Exists(_ context.Context, electionID, candidateID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasCandidate(electionID, candidateID), nil
}

func (s *Store) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, roster := range s.candidates {
		total += len(roster)
	}
	return total, nil
}

func (s *Store) hasCandidate(electionID, candidateID uuid.UUID) bool {
	for _, c := range s.candidates[electionID] {
		if c.ID == candidateID {
			return true
		}
	}
	return false
}

// Cast holds the store read lock for the whole insert so that a concurrent
// status transition is ordered either entirely before or after it.
func (s *Store) Cast(_ context.Context, electionID uuid.UUID, voterID string, candidateID uuid.UUID, now time.Time) (*domain.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	election, ok := s.elections[electionID]
	if !ok {
		return nil, domain.ErrElectionNotFound
	}
	if election.Status != domain.StatusActive {
		return nil, domain.ErrElectionNotActive
	}
	if !s.hasCandidate(electionID, candidateID) {
		return nil, domain.ErrInvalidCandidate
	}

	box := s.boxes[electionID]
	box.mu.Lock()
	defer box.mu.Unlock()

	if _, voted := box.ballots[voterID]; voted {
		return nil, domain.ErrAlreadyVoted
	}

	ballot := domain.Ballot{
		ElectionID:  electionID,
		VoterID:     voterID,
		CandidateID: candidateID,
		CastAt:      now,
	}
	box.ballots[voterID] = ballot
	box.counts[candidateID]++
	return &ballot, nil
}

func (s *Store) CountFor(_ context.Context, electionID, candidateID uuid.UUID) (int64, error) {
	box, ok := s.box(electionID)
	if !ok {
		return 0, nil
	}
	box.mu.RLock()
	defer box.mu.RUnlock()
	return box.counts[candidateID], nil
}

func (s *Store) TotalCast(_ context.Context, electionID uuid.UUID) (int64, error) {
	box, ok := s.box(electionID)
	if !ok {
		return 0, nil
	}
	box.mu.RLock()
	defer box.mu.RUnlock()
	return int64(len(box.ballots)), nil
}

func (s *Store) HasVoted(_ context.Context, electionID uuid.UUID, voterID string) (bool, error) {
	box, ok := s.box(electionID)
	if !ok {
		return false, nil
	}
	box.mu.RLock()
	defer box.mu.RUnlock()
	_, voted := box.ballots[voterID]
	return voted, nil
}

func (s *Store) Counts(_ context.Context, electionID uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	box, ok := s.box(electionID)
	if !ok {
		return counts, nil
	}
	box.mu.RLock()
	defer box.mu.RUnlock()
	for id, n := range box.counts {
		counts[id] = n
	}
	return counts, nil
}

func (s *Store) TotalAll(_ context.Context) (int64, error) {
	s.mu.RLock()
	boxes := make([]*ballotBox, 0, len(s.boxes))
	for _, box := range s.boxes {
		boxes = append(boxes, box)
	}
	s.mu.RUnlock()

	var total int64
	for _, box := range boxes {
		box.mu.RLock()
		total += int64(len(box.ballots))
		box.mu.RUnlock()
	}
	return total, nil
}

func (s *Store) box(electionID uuid.UUID) (*ballotBox, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	box, ok := s.boxes[electionID]
	return box, ok
}
