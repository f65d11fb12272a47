package api

import (
	"net/http"

	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/domain/trend"
)

// ── Request / Response types ────────────────────────────────────────────────

type ImportQuestionsRequest struct {
	Questions []question.Question `json:"questions" validate:"required,min=1"`
}

type ImportQuestionsResponse struct {
	Imported int `json:"imported" example:"120"`
}

type CountQuestionsResponse struct {
	ExamType string `json:"exam_type,omitempty" example:"JEE_MAIN"`
	Count    int    `json:"count" example:"1044"`
}

type TrendsResponse struct {
	ExamType string               `json:"exam_type" example:"JEE_MAIN"`
	Subject  string               `json:"subject,omitempty" example:"Physics"`
	Chapters []trend.ChapterStat  `json:"chapters"`
	Subjects []trend.SubjectTotal `json:"subjects"`
	// Rounded is the whole-percent view of Chapters, for display.
	Rounded []trend.RoundedShare `json:"rounded"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// importQuestions adds or replaces corpus questions.
// @Summary      Import questions
// @Description  Validates and upserts past-year questions into the corpus.
// @Tags         Corpus
// @Accept       json
// @Produce      json
// @Param        body  body      ImportQuestionsRequest  true  "Questions to import"
// @Success      201   {object}  ImportQuestionsResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /questions/import [post]
func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request) {
	var req ImportQuestionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	n, err := h.exams.ImportQuestions(r.Context(), req.Questions)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, ImportQuestionsResponse{Imported: n})
}

// countQuestions returns the corpus size.
// @Summary      Count questions
// @Tags         Corpus
// @Produce      json
// @Param        exam_type  query     string  false  "Exam type"
// @Success      200        {object}  CountQuestionsResponse
// @Failure      500        {object}  map[string]string
// @Router       /questions/count [get]
func (h *Handler) countQuestions(w http.ResponseWriter, r *http.Request) {
	examType := r.URL.Query().Get("exam_type")

	n, err := h.exams.CountQuestions(r.Context(), examType)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, CountQuestionsResponse{ExamType: examType, Count: n})
}

// getTrends returns the trend-weighted chapter distribution.
// @Summary      Chapter trends
// @Description  Frequency, recency and consistency per chapter, with the optimized sampling percentage. Ranked by optimized percentage.
// @Tags         Corpus
// @Produce      json
// @Param        exam_type  query     string  true   "Exam type"
// @Param        subject    query     string  false  "Restrict to one subject"
// @Success      200        {object}  TrendsResponse
// @Failure      400        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /trends [get]
func (h *Handler) getTrends(w http.ResponseWriter, r *http.Request) {
	examType := r.URL.Query().Get("exam_type")
	subject := r.URL.Query().Get("subject")
	if examType == "" {
		respondError(w, http.StatusBadRequest, "exam_type is required")
		return
	}

	stats, err := h.exams.Trends(r.Context(), examType, subject)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, TrendsResponse{
		ExamType: examType,
		Subject:  subject,
		Chapters: stats,
		Subjects: trend.SubjectTotals(stats),
		Rounded:  trend.Rounded(stats),
	})
}
