package mocktest

import (
	"time"

	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/id"
)

// MarkingScheme holds the marks awarded per outcome.
type MarkingScheme struct {
	Positive      float64 `json:"positive"`
	Negative      float64 `json:"negative"`
	// PartialCredit awards proportional marks on multiple_correct questions
	// when the selection is a strict subset of the correct options.
	PartialCredit bool   `json:"partial_credit"`
}

// SectionSummary records how one subject section of a test was filled.
type SectionSummary struct {
	Subject       string `json:"subject"`
	MCQCount      int    `json:"mcq_count"`
	IntegerCount  int    `json:"integer_count"`
	QuestionCount int    `json:"question_count"`
	// PartialCredit is the section's effective partial-credit policy.
	PartialCredit bool   `json:"partial_credit"`
}

// MockTest is created once per generation call and is immutable afterwards.
type MockTest struct {
	ID               string
	Name             string
	ExamType         string
	Difficulty       question.Difficulty
	TotalQuestions   int
	TotalMarks       float64
	TimeLimitMinutes int
	Marking          MarkingScheme
	Sections         []SectionSummary
	Questions        []question.Question
	CreatedAt        time.Time
}

// New assembles a MockTest from already selected questions and computes totals.
func New(name, examType string, difficulty question.Difficulty, timeLimitMinutes int, marking MarkingScheme, sections []SectionSummary, questions []question.Question, now time.Time) *MockTest {
	var total float64
	for _, q := range questions {
		total += q.Marks
	}
	return &MockTest{
		ID:               id.WithPrefix("mt"),
		Name:             name,
		ExamType:         examType,
		Difficulty:       difficulty,
		TotalQuestions:   len(questions),
		TotalMarks:       total,
		TimeLimitMinutes: timeLimitMinutes,
		Marking:          marking,
		Sections:         sections,
		Questions:        questions,
		CreatedAt:        now,
	}
}

// TimeLimit returns the time limit as a duration; zero means untimed.
func (t *MockTest) TimeLimit() time.Duration {
	return time.Duration(t.TimeLimitMinutes) * time.Minute
}

// QuestionByID returns the test's copy of a question.
func (t *MockTest) QuestionByID(questionID string) (question.Question, bool) {
	for _, q := range t.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return question.Question{}, false
}

// PartialCreditSubjects lists the subjects whose section awards partial
// credit. It is empty for tests without sections.
func (t *MockTest) PartialCreditSubjects() map[string]bool {
	out := make(map[string]bool)
	for _, sec := range t.Sections {
		if sec.PartialCredit {
			out[sec.Subject] = true
		}
	}
	return out
}

// StudentView returns a copy safe to deliver before submission: correct
// options and explanations are removed.
func (t *MockTest) StudentView() MockTest {
	view := *t
	view.Questions = make([]question.Question, len(t.Questions))
	for i, q := range t.Questions {
		q.CorrectOptions = nil
		q.Explanation = ""
		view.Questions[i] = q
	}
	return view
}
