package domain

import (
	"time"

	"github.com/google/uuid"
)

type ElectionStatus string

const (
	StatusDraft  ElectionStatus = "draft"
	StatusActive ElectionStatus = "active"
	StatusEnded  ElectionStatus = "ended"
)

// Next returns the only status reachable from s. Ended is terminal.
func (s ElectionStatus) Next() (ElectionStatus, bool) {
	switch s {
	case StatusDraft:
		return StatusActive, true
	case StatusActive:
		return StatusEnded, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether target immediately follows s.
func (s ElectionStatus) CanTransitionTo(target ElectionStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

func (s ElectionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusEnded:
		return true
	}
	return false
}

type Election struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	StartsAt    time.Time      `json:"starts_at"`
	EndsAt      time.Time      `json:"ends_at"`
	Status      ElectionStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AcceptsBallots reports whether a ballot may be recorded at now. When
// enforceSchedule is false the end timestamp is advisory.
func (e *Election) AcceptsBallots(now time.Time, enforceSchedule bool) bool {
	if e.Status != StatusActive {
		return false
	}
	if enforceSchedule && !now.Before(e.EndsAt) {
		return false
	}
	return true
}
