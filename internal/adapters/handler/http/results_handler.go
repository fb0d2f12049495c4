package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

type ResultsHandler struct {
	service ports.ElectionService
}

func NewResultsHandler(service ports.ElectionService) *ResultsHandler {
	return &ResultsHandler{
		service: service,
	}
}

// GetResults godoc
// @Summary      Ranked results of an election
// @Description  Live, provisional results while active; final results with co-winners once ended.
// @Tags         results
// @Produce      json
// @Param        id        path      string  true   "Election ID"
// @Param        eligible  query     int     false  "Eligible voter count used for turnout"
// @Success      200       {object}  domain.TallyResult
// @Failure      404       {object}  errorResponse
// @Router       /elections/{id}/results [get]
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	result, ok := h.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportResults godoc
// @Summary      Results as CSV
// @Tags         results
// @Produce      text/csv
// @Param        id        path      string  true   "Election ID"
// @Param        eligible  query     int     false  "Eligible voter count used for turnout"
// @Success      200
// @Security     BearerAuth
// @Router       /elections/{id}/results/export [get]
func (h *ResultsHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	result, ok := h.compute(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "election-"+result.ElectionID.String()+"-results.csv"))
	w.WriteHeader(http.StatusOK)

	if err := writeResultsCSV(csv.NewWriter(w), result); err != nil {
		http.Error(w, "failed to write csv", http.StatusInternalServerError)
	}
}

func (h *ResultsHandler) compute(w http.ResponseWriter, r *http.Request) (*domain.TallyResult, bool) {
	id, ok := electionID(w, r)
	if !ok {
		return nil, false
	}

	var eligible int64
	if raw := r.URL.Query().Get("eligible"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "validation", "eligible must be an integer")
			return nil, false
		}
		eligible = parsed
	}

	result, err := h.service.GetResults(r.Context(), ports.ResultsInput{ElectionID: id, EligibleVoters: eligible})
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return result, true
}

func writeResultsCSV(cw *csv.Writer, result *domain.TallyResult) error {
	records := [][]string{
		{"rank", "candidate_id", "candidate", "tag", "votes", "percentage", "winner"},
	}
	for _, c := range result.Candidates {
		records = append(records, []string{
			strconv.Itoa(c.Rank),
			c.CandidateID.String(),
			c.Name,
			c.Tag,
			strconv.FormatInt(c.Votes, 10),
			strconv.FormatFloat(c.Percentage, 'f', 2, 64),
			strconv.FormatBool(c.IsWinner),
		})
	}

	turnout := ""
	if result.Turnout != nil {
		turnout = strconv.FormatFloat(*result.Turnout, 'f', 2, 64)
	}
	records = append(records,
		[]string{},
		[]string{"total_cast", strconv.FormatInt(result.TotalCast, 10)},
		[]string{"final", strconv.FormatBool(result.IsFinal)},
		[]string{"turnout", turnout},
		[]string{"winners", joinIDs(result.Winners)},
	)
	return cw.WriteAll(records)
}

func joinIDs(ids []uuid.UUID) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " "
		}
		out += id.String()
	}
	return out
}
