package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type VoteHandler struct {
	service ports.ElectionService
}

func NewVoteHandler(service ports.ElectionService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	CandidateID uuid.UUID `json:"candidate_id"`
}

type myBallotResponse struct {
	ElectionID uuid.UUID `json:"election_id"`
	HasVoted   bool      `json:"has_voted"`
}

// CastVote godoc
// @Summary      Casts the caller's ballot
// @Description  One ballot per voter per election. A second attempt fails with code `already_voted`.
// @Tags         ballots
// @Accept       json
// @Produce      json
// @Param        id      path      string       true  "Election ID"
// @Param        ballot  body      voteRequest  true  "Ballot"
// @Success      201     {object}  domain.Ballot
// @Failure      409     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Failure      503     {object}  errorResponse
// @Security     BearerAuth
// @Router       /elections/{id}/ballots [post]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "Unauthorized: missing identity")
		return
	}

	input := ports.VoteInput{
		ElectionID:  id,
		CandidateID: req.CandidateID,
		VoterID:     identity.Subject,
	}

	ballot, err := h.service.CastVote(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ballot)
}

// MyBallot godoc
// @Summary      Reports whether the caller already voted
// @Tags         ballots
// @Produce      json
// @Param        id   path      string  true  "Election ID"
// @Success      200  {object}  myBallotResponse
// @Security     BearerAuth
// @Router       /elections/{id}/ballots/me [get]
func (h *VoteHandler) MyBallot(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized", "Unauthorized: missing identity")
		return
	}

	voted, err := h.service.HasVoted(r.Context(), id, identity.Subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, myBallotResponse{ElectionID: id, HasVoted: voted})
}
