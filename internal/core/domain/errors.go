package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrElectionNotFound  = fmt.Errorf("election %w", ErrNotFound)
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrElectionNotActive = errors.New("election is not accepting ballots")
	ErrElectionNotDraft  = errors.New("election roster is frozen")
	ErrInvalidCandidate  = errors.New("candidate is not on this election's ballot")
	ErrAlreadyVoted      = errors.New("voter has already voted in this election")
	ErrTransient         = errors.New("temporary storage failure")
)

// Validationf builds an ErrValidation carrying a caller-facing reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsRetryable reports whether err is a transient infrastructure failure.
// AlreadyVoted and every other domain error are permanent.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
