package api

import (
	"net/http"
	"time"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
)

// ── Request / Response types ────────────────────────────────────────────────

type ResponseItem struct {
	QuestionID       string   `json:"question_id" example:"jee_main-physics-optics-004"`
	SelectedOptions  []string `json:"selected_options" example:"a,c"`
	TimeSpentSeconds int      `json:"time_spent_seconds" example:"95"`
}

// ResponsesRequest is not validated item by item: entries for blank or
// unknown question ids are dropped by the scorer and reported back.
type ResponsesRequest struct {
	Responses []ResponseItem `json:"responses"`
}

func (r ResponsesRequest) toDomain() []attempt.Response {
	out := make([]attempt.Response, len(r.Responses))
	for i, item := range r.Responses {
		out[i] = attempt.Response{
			QuestionID:       item.QuestionID,
			SelectedOptions:  item.SelectedOptions,
			TimeSpentSeconds: max(item.TimeSpentSeconds, 0),
		}
	}
	return out
}

type AttemptResponse struct {
	ID               string         `json:"id" example:"att_a1b2c3d4e5f6g7h8"`
	TestID           string         `json:"test_id" example:"mt_a1b2c3d4e5f6g7h8"`
	Status           attempt.Status `json:"status" example:"in_progress"`
	StartedAt        time.Time      `json:"started_at"`
	EndedAt          *time.Time     `json:"ended_at,omitempty"`
	ObtainedMarks    float64        `json:"obtained_marks" example:"0"`
	TimeSpentSeconds int            `json:"time_spent_seconds" example:"0"`
}

func toAttemptResponse(a *attempt.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:               a.ID,
		TestID:           a.TestID,
		Status:           a.Status,
		StartedAt:        a.StartedAt,
		EndedAt:          a.EndedAt,
		ObtainedMarks:    a.ObtainedMarks,
		TimeSpentSeconds: a.TimeSpentSeconds,
	}
}

type SubmitAttemptResponse struct {
	Attempt  AttemptResponse          `json:"attempt"`
	Analysis *diagnostics.Analysis    `json:"analysis"`
	Results  []attempt.QuestionResult `json:"results"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getAttempt returns an attempt's status and marks.
// @Summary      Get an attempt
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  AttemptResponse
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /attempts/{attemptID} [get]
func (h *Handler) getAttempt(w http.ResponseWriter, r *http.Request) {
	a, err := h.exams.GetAttempt(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, toAttemptResponse(a))
}

// saveResponses stores draft answers for an in-progress attempt.
// @Summary      Save draft responses
// @Description  Responses are merged by question id. Drafts are what gets scored if the attempt times out.
// @Tags         Attempts
// @Accept       json
// @Param        attemptID  path  string            true  "Attempt ID"
// @Param        body       body  ResponsesRequest  true  "Responses"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "attempt already finalized"
// @Failure      500  {object}  map[string]string
// @Router       /attempts/{attemptID}/responses [put]
func (h *Handler) saveResponses(w http.ResponseWriter, r *http.Request) {
	var req ResponsesRequest
	if !decodeLenientJSON(w, r, &req) {
		return
	}

	err := h.exams.SaveResponses(r.Context(), r.PathValue("attemptID"), req.toDomain())
	if h.handleServiceError(w, err) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// submitAttempt scores an attempt and finalizes it.
// @Summary      Submit an attempt
// @Description  Scores the given responses under the test's marking scheme and stores the analysis. Responses for blank or unknown question ids are ignored and listed in dropped_responses.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        attemptID  path      string            true  "Attempt ID"
// @Param        body       body      ResponsesRequest  true  "Final responses"
// @Success      200        {object}  SubmitAttemptResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "attempt already finalized"
// @Failure      500        {object}  map[string]string
// @Router       /attempts/{attemptID}/submit [post]
func (h *Handler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	var req ResponsesRequest
	if !decodeLenientJSON(w, r, &req) {
		return
	}

	res, err := h.exams.SubmitAttempt(r.Context(), r.PathValue("attemptID"), req.toDomain())
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SubmitAttemptResponse{
		Attempt:  toAttemptResponse(res.Attempt),
		Analysis: res.Analysis,
		Results:  res.Results,
	})
}

// getAnalysis returns the stored analysis of a finalized attempt.
// @Summary      Get attempt analysis
// @Tags         Attempts
// @Produce      json
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {object}  diagnostics.Analysis
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /attempts/{attemptID}/analysis [get]
func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	an, err := h.exams.GetAnalysis(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, an)
}

// getReport renders the analysis as Markdown.
// @Summary      Get attempt report
// @Tags         Attempts
// @Produce      text/markdown
// @Param        attemptID  path      string  true  "Attempt ID"
// @Success      200        {string}  string
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /attempts/{attemptID}/report [get]
func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	an, err := h.exams.GetAnalysis(r.Context(), r.PathValue("attemptID"))
	if h.handleServiceError(w, err) {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(diagnostics.Markdown(*an)))
}
