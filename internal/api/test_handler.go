package api

import (
	"net/http"
	"time"

	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type GenerateTestRequest struct {
	ExamType      string `json:"exam_type" validate:"required" example:"JEE_MAIN"`
	Difficulty    string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard mixed" example:"mixed"`
	Name          string `json:"name,omitempty" validate:"max=200" example:"Weekend mock"`
	// QuestionCount sizes exams without a preset. JEE_MAIN and NEET have a
	// fixed size and reject any other count.
	QuestionCount int    `json:"question_count,omitempty" validate:"gte=0,lte=500" example:"30"`
	PartialCredit *bool  `json:"partial_credit,omitempty" example:"false"`
}

// TestQuestion is a question as delivered to the student: no answers.
type TestQuestion struct {
	ID            string              `json:"id" example:"jee_main-physics-optics-004"`
	Subject       string              `json:"subject" example:"Physics"`
	Chapter       string              `json:"chapter" example:"Optics"`
	Topic         string              `json:"topic,omitempty" example:"Lenses"`
	Year          int                 `json:"year" example:"2023"`
	Difficulty    question.Difficulty `json:"difficulty" example:"medium"`
	Type          question.Type       `json:"type" example:"single_correct"`
	Text          string              `json:"text"`
	Options       []question.Option   `json:"options"`
	Marks         float64             `json:"marks" example:"4"`
	NegativeMarks float64             `json:"negative_marks" example:"-1"`
}

type MockTestResponse struct {
	ID               string                    `json:"id" example:"mt_a1b2c3d4e5f6g7h8"`
	Name             string                    `json:"name" example:"JEE Main Mock Test"`
	ExamType         string                    `json:"exam_type" example:"JEE_MAIN"`
	Difficulty       question.Difficulty       `json:"difficulty,omitempty" example:"mixed"`
	TotalQuestions   int                       `json:"total_questions" example:"75"`
	TotalMarks       float64                   `json:"total_marks" example:"300"`
	TimeLimitMinutes int                       `json:"time_limit_minutes" example:"180"`
	Marking          mocktest.MarkingScheme    `json:"marking"`
	Sections         []mocktest.SectionSummary `json:"sections,omitempty"`
	Questions        []TestQuestion            `json:"questions"`
	CreatedAt        time.Time                 `json:"created_at"`
}

func toMockTestResponse(t *mocktest.MockTest) MockTestResponse {
	view := t.StudentView()
	questions := make([]TestQuestion, len(view.Questions))
	for i, q := range view.Questions {
		questions[i] = TestQuestion{
			ID:            q.ID,
			Subject:       q.Subject,
			Chapter:       q.Chapter,
			Topic:         q.Topic,
			Year:          q.Year,
			Difficulty:    q.Difficulty,
			Type:          q.Type,
			Text:          q.Text,
			Options:       q.Options,
			Marks:         q.Marks,
			NegativeMarks: q.NegativeMarks,
		}
	}
	return MockTestResponse{
		ID:               view.ID,
		Name:             view.Name,
		ExamType:         view.ExamType,
		Difficulty:       view.Difficulty,
		TotalQuestions:   view.TotalQuestions,
		TotalMarks:       view.TotalMarks,
		TimeLimitMinutes: view.TimeLimitMinutes,
		Marking:          view.Marking,
		Sections:         view.Sections,
		Questions:        questions,
		CreatedAt:        view.CreatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// generateTest assembles a trend-weighted mock test.
// @Summary      Generate a mock test
// @Description  Draws questions so the chapter mix follows how often and how recently each chapter was examined. Exams with a preset (JEE_MAIN, NEET) use their sections and marking; others get a single 30-question section.
// @Tags         Tests
// @Accept       json
// @Produce      json
// @Param        body  body      GenerateTestRequest  true  "Generation parameters"
// @Success      201   {object}  MockTestResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string  "not enough questions"
// @Failure      500   {object}  map[string]string
// @Router       /tests [post]
func (h *Handler) generateTest(w http.ResponseWriter, r *http.Request) {
	var req GenerateTestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.exams.GenerateTestWithOptions(r.Context(), service.GenerateRequest{
		ExamType:      req.ExamType,
		Difficulty:    question.Difficulty(req.Difficulty),
		Name:          req.Name,
		QuestionCount: req.QuestionCount,
		PartialCredit: req.PartialCredit,
	})
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toMockTestResponse(t))
}

// getTest returns a mock test without its answers.
// @Summary      Get a mock test
// @Tags         Tests
// @Produce      json
// @Param        testID  path      string  true  "Test ID"
// @Success      200     {object}  MockTestResponse
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /tests/{testID} [get]
func (h *Handler) getTest(w http.ResponseWriter, r *http.Request) {
	t, err := h.exams.GetMockTest(r.Context(), r.PathValue("testID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, toMockTestResponse(t))
}

// startAttempt opens a timed attempt on a test.
// @Summary      Start an attempt
// @Description  The attempt is auto-submitted with its saved responses when the time limit runs out.
// @Tags         Attempts
// @Produce      json
// @Param        testID  path      string  true  "Test ID"
// @Success      201     {object}  AttemptResponse
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /tests/{testID}/attempts [post]
func (h *Handler) startAttempt(w http.ResponseWriter, r *http.Request) {
	a, err := h.exams.StartAttempt(r.Context(), r.PathValue("testID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toAttemptResponse(a))
}
