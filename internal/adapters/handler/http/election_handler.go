package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type ElectionHandler struct {
	service ports.ElectionService
}

func NewElectionHandler(service ports.ElectionService) *ElectionHandler {
	return &ElectionHandler{
		service: service,
	}
}

type createElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type addCandidateRequest struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Tag      string `json:"tag"`
}

// ListElections godoc
// @Summary      Lists elections
// @Tags         elections
// @Produce      json
// @Success      200  {array}   domain.Election
// @Router       /elections [get]
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.service.ListElections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, elections)
}

// CreateElection godoc
// @Summary      Creates a draft election
// @Tags         elections
// @Accept       json
// @Produce      json
// @Param        election  body      createElectionRequest  true  "Election"
// @Success      201       {object}  domain.Election
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Security     BearerAuth
// @Router       /elections [post]
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req createElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	input := ports.CreateElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	election, err := h.service.CreateElection(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, election)
}

// GetElection godoc
// @Summary      Gets an election
// @Tags         elections
// @Produce      json
// @Param        id   path      string  true  "Election ID"
// @Success      200  {object}  domain.Election
// @Failure      404  {object}  errorResponse
// @Router       /elections/{id} [get]
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	election, err := h.service.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

// OpenElection godoc
// @Summary      Opens a draft election for voting
// @Description  Freezes the candidate roster. Only draft elections can be opened.
// @Tags         elections
// @Produce      json
// @Param        id   path      string  true  "Election ID"
// @Success      200  {object}  domain.Election
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /elections/{id}/open [post]
func (h *ElectionHandler) OpenElection(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	election, err := h.service.OpenElection(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

// CloseElection godoc
// @Summary      Ends an active election
// @Tags         elections
// @Produce      json
// @Param        id   path      string  true  "Election ID"
// @Success      200  {object}  domain.Election
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /elections/{id}/close [post]
func (h *ElectionHandler) CloseElection(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	election, err := h.service.CloseElection(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

// ListCandidates godoc
// @Summary      Lists the candidates of an election in roster order
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Election ID"
// @Success      200  {array}   domain.Candidate
// @Failure      404  {object}  errorResponse
// @Router       /elections/{id}/candidates [get]
func (h *ElectionHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	candidates, err := h.service.ListCandidates(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// AddCandidate godoc
// @Summary      Adds a candidate to a draft election
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      string               true  "Election ID"
// @Param        candidate  body      addCandidateRequest  true  "Candidate"
// @Success      201        {object}  domain.Candidate
// @Failure      409        {object}  errorResponse
// @Security     BearerAuth
// @Router       /elections/{id}/candidates [post]
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	id, ok := electionID(w, r)
	if !ok {
		return
	}

	var req addCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	input := ports.AddCandidateInput{
		ElectionID: id,
		Name:       req.Name,
		Platform:   req.Platform,
		Tag:        req.Tag,
	}

	candidate, err := h.service.AddCandidate(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

// Dashboard godoc
// @Summary      Admin overview of elections, candidates and ballots
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Dashboard
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *ElectionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func electionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "validation", "invalid election id")
		return uuid.Nil, false
	}
	return id, true
}
