package domain

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID         uuid.UUID `json:"id"`
	ElectionID uuid.UUID `json:"election_id"`
	Name       string    `json:"name"`
	Platform   string    `json:"platform,omitempty"`
	Tag        string    `json:"tag,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
