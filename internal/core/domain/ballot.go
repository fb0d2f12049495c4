package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ballot is identified by (ElectionID, VoterID); a voter holds at most one
// ballot per election and it is never changed once cast.
type Ballot struct {
	ElectionID  uuid.UUID `json:"election_id"`
	VoterID     string    `json:"voter_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}
