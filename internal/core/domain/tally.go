package domain

import (
	"time"

	"github.com/google/uuid"
)

type CandidateTally struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag,omitempty"`
	Votes       int64     `json:"votes"`
	Percentage  float64   `json:"percentage"`
	Rank        int       `json:"rank"`
	IsWinner    bool      `json:"is_winner"`
}

// TallyResult is derived from an election, its roster and one ballot
// snapshot. Winners are only designated when IsFinal is true.
type TallyResult struct {
	ElectionID     uuid.UUID        `json:"election_id"`
	Title          string           `json:"title"`
	Status         ElectionStatus   `json:"status"`
	IsFinal        bool             `json:"is_final"`
	TotalCast      int64            `json:"total_cast"`
	EligibleVoters *int64           `json:"eligible_voters,omitempty"`
	Turnout        *float64         `json:"turnout"`
	Candidates     []CandidateTally `json:"candidates"`
	Winners        []uuid.UUID      `json:"winners"`
	ComputedAt     time.Time        `json:"computed_at"`
}

// WithTurnout returns a copy of r with turnout derived from eligible, clamped
// to [0, 100]. A non-positive eligible count leaves turnout undefined.
func (r TallyResult) WithTurnout(eligible int64) TallyResult {
	r.EligibleVoters = nil
	r.Turnout = nil
	if eligible <= 0 {
		return r
	}
	e := eligible
	t := float64(r.TotalCast) / float64(eligible) * 100
	if t > 100 {
		t = 100
	}
	if t < 0 {
		t = 0
	}
	r.EligibleVoters = &e
	r.Turnout = &t
	return r
}

type Dashboard struct {
	Elections       int                    `json:"elections"`
	ByStatus        map[ElectionStatus]int `json:"by_status"`
	TotalCandidates int                    `json:"total_candidates"`
	TotalBallots    int64                  `json:"total_ballots"`
}
