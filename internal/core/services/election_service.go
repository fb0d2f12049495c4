package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type ElectionServiceOptions struct {
	// EnforceSchedule rejects ballots once an election's end timestamp has
	// passed, even before an admin closes it.
	EnforceSchedule bool
	Logger          *slog.Logger
}

type ElectionService struct {
	registry        ports.ElectionRegistry
	roster          ports.CandidateRoster
	ballots         ports.BallotStore
	tally           ports.TallyEngine
	clock           ports.Clock
	enforceSchedule bool
	logger          *slog.Logger
}

func NewElectionService(
	registry ports.ElectionRegistry,
	roster ports.CandidateRoster,
	ballots ports.BallotStore,
	tally ports.TallyEngine,
	clock ports.Clock,
	opts ElectionServiceOptions,
) *ElectionService {
	return &ElectionService{
		registry:        registry,
		roster:          roster,
		ballots:         ballots,
		tally:           tally,
		clock:           clock,
		enforceSchedule: opts.EnforceSchedule,
		logger:          resolveLogger(opts.Logger),
	}
}

func (s *ElectionService) CreateElection(ctx context.Context, input ports.CreateElectionInput) (*domain.Election, error) {
	election, err := s.registry.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("election created", "election_id", election.ID, "title", election.Title)
	return election, nil
}

func (s *ElectionService) GetElection(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return s.registry.Get(ctx, id)
}

func (s *ElectionService) ListElections(ctx context.Context) ([]*domain.Election, error) {
	return s.registry.List(ctx)
}

func (s *ElectionService) AddCandidate(ctx context.Context, input ports.AddCandidateInput) (*domain.Candidate, error) {
	candidate, err := s.roster.AddCandidate(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("candidate added", "election_id", candidate.ElectionID, "candidate_id", candidate.ID)
	return candidate, nil
}

func (s *ElectionService) ListCandidates(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error) {
	if _, err := s.registry.Get(ctx, electionID); err != nil {
		return nil, err
	}
	return s.roster.ListCandidates(ctx, electionID)
}

func (s *ElectionService) OpenElection(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return s.transition(ctx, id, domain.StatusActive)
}

func (s *ElectionService) CloseElection(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	return s.transition(ctx, id, domain.StatusEnded)
}

func (s *ElectionService) transition(ctx context.Context, id uuid.UUID, target domain.ElectionStatus) (*domain.Election, error) {
	election, err := s.registry.Transition(ctx, id, target)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.logger.Info("election status changed", "election_id", id, "status", election.Status)
	return election, nil
}

// CastVote checks the election state and roster before handing the ballot to
// the store. The store repeats both checks atomically with the insert, so a
// concurrent close or duplicate cast still cannot slip through.
func (s *ElectionService) CastVote(ctx context.Context, input ports.VoteInput) (*domain.Ballot, error) {
	voterID := strings.TrimSpace(input.VoterID)
	if voterID == "" {
		return nil, domain.Validationf("voter id is required")
	}

	election, err := s.registry.Get(ctx, input.ElectionID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !election.AcceptsBallots(now, s.enforceSchedule) {
		return nil, domain.ErrElectionNotActive
	}

	ok, err := s.roster.Exists(ctx, election.ID, input.CandidateID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCandidate
	}

	ballot, err := s.ballots.Cast(ctx, election.ID, voterID, input.CandidateID, now)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, election.ID)
	s.logger.Info("ballot cast", "election_id", election.ID)
	return ballot, nil
}

func (s *ElectionService) HasVoted(ctx context.Context, electionID uuid.UUID, voterID string) (bool, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return false, domain.Validationf("voter id is required")
	}
	if _, err := s.registry.Get(ctx, electionID); err != nil {
		return false, err
	}
	return s.ballots.HasVoted(ctx, electionID, voterID)
}

func (s *ElectionService) GetResults(ctx context.Context, input ports.ResultsInput) (*domain.TallyResult, error) {
	if input.EligibleVoters < 0 {
		return nil, domain.Validationf("eligible voter count must not be negative")
	}
	return s.tally.Compute(ctx, input.ElectionID, input.EligibleVoters)
}

func (s *ElectionService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	elections, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := s.roster.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	ballots, err := s.ballots.TotalAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := map[domain.ElectionStatus]int{
		domain.StatusDraft:  0,
		domain.StatusActive: 0,
		domain.StatusEnded:  0,
	}
	for _, e := range elections {
		byStatus[e.Status]++
	}

	return &domain.Dashboard{
		Elections:       len(elections),
		ByStatus:        byStatus,
		TotalCandidates: candidates,
		TotalBallots:    ballots,
	}, nil
}

// invalidate runs after a committed mutation. The mutation already happened,
// so a cache failure is logged rather than returned; cached entries expire on
// their own TTL.
func (s *ElectionService) invalidate(ctx context.Context, electionID uuid.UUID) {
	if err := s.tally.Invalidate(ctx, electionID); err != nil {
		s.logger.Error("tally cache invalidation failed", "election_id", electionID, "error", err)
	}
}
