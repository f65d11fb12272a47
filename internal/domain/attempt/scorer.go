package attempt

import (
	"strings"

	"github.com/pyqforge/backend/internal/domain/question"
)

// Response is a student's answer to one question. An empty selection means
// the question was not attempted.
type Response struct {
	QuestionID       string   `json:"question_id"`
	SelectedOptions  []string `json:"selected_options"`
	TimeSpentSeconds int      `json:"time_spent_seconds"`
}

type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeIncorrect   Outcome = "incorrect"
	OutcomePartial     Outcome = "partial"
	OutcomeUnattempted Outcome = "unattempted"
)

// Policy controls scoring choices that differ between exams.
type Policy struct {
	// PartialCredit enables proportional marks for multiple_correct
	// questions answered with a strict subset of the correct options.
	// Off by default: any partial overlap is incorrect.
	PartialCredit         bool
	// PartialCreditSubjects turns partial credit on for questions of the
	// listed subjects only, for tests whose sections differ.
	PartialCreditSubjects map[string]bool
}

func (p Policy) partialCreditFor(q question.Question) bool {
	return p.PartialCredit || p.PartialCreditSubjects[q.Subject]
}

// QuestionResult is the scored outcome of one question of the test.
type QuestionResult struct {
	QuestionID       string              `json:"question_id"`
	Subject          string              `json:"subject"`
	Chapter          string              `json:"chapter"`
	Difficulty       question.Difficulty `json:"difficulty"`
	Outcome          Outcome             `json:"outcome"`
	Marks            float64             `json:"marks"`
	Selected         []string            `json:"selected"`
	TimeSpentSeconds int                 `json:"time_spent_seconds"`
}

// ScoreSheet holds per-question results in test order plus aggregates.
type ScoreSheet struct {
	Results        []QuestionResult `json:"results"`
	TotalQuestions int              `json:"total_questions"`
	Correct        int              `json:"correct"`
	Incorrect      int              `json:"incorrect"`
	Partial        int              `json:"partial"`
	Unattempted    int              `json:"unattempted"`
	ObtainedMarks  float64          `json:"obtained_marks"`
	MaxMarks       float64          `json:"max_marks"`
	Accuracy       float64          `json:"accuracy"`
	// Dropped lists question ids of responses that do not belong to the test.
	Dropped []string `json:"dropped,omitempty"`
}

type Scorer struct {
	Policy Policy
}

func NewScorer(p Policy) *Scorer {
	return &Scorer{Policy: p}
}

// Score grades responses against the test's questions. It is a pure
// function of its inputs. Responses for unknown questions are skipped and
// reported in Dropped; if a question is answered twice the last response wins.
func (s *Scorer) Score(questions []question.Question, responses []Response) ScoreSheet {
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	byQuestion := make(map[string]Response, len(responses))
	var dropped []string
	for _, r := range responses {
		if _, ok := known[r.QuestionID]; !ok {
			dropped = append(dropped, r.QuestionID)
			continue
		}
		byQuestion[r.QuestionID] = r
	}

	sheet := ScoreSheet{
		Results:        make([]QuestionResult, 0, len(questions)),
		TotalQuestions: len(questions),
		Dropped:        dropped,
	}
	for _, q := range questions {
		r := byQuestion[q.ID]
		selected := normalize(r.SelectedOptions)
		outcome, marks := s.grade(q, selected)

		sheet.Results = append(sheet.Results, QuestionResult{
			QuestionID:       q.ID,
			Subject:          q.Subject,
			Chapter:          q.Chapter,
			Difficulty:       q.Difficulty,
			Outcome:          outcome,
			Marks:            marks,
			Selected:         selected,
			TimeSpentSeconds: max(r.TimeSpentSeconds, 0),
		})
		sheet.ObtainedMarks += marks
		sheet.MaxMarks += q.Marks

		switch outcome {
		case OutcomeCorrect:
			sheet.Correct++
		case OutcomeIncorrect:
			sheet.Incorrect++
		case OutcomePartial:
			sheet.Partial++
		default:
			sheet.Unattempted++
		}
	}

	if sheet.TotalQuestions > 0 {
		sheet.Accuracy = float64(sheet.Correct) / float64(sheet.TotalQuestions) * 100
	}
	return sheet
}

func (s *Scorer) grade(q question.Question, selected []string) (Outcome, float64) {
	if len(selected) == 0 {
		return OutcomeUnattempted, 0
	}
	if q.IsCorrectSelection(selected) {
		return OutcomeCorrect, q.Marks
	}
	if s.Policy.partialCreditFor(q) && q.Type == question.TypeMultipleCorrect {
		if hits, ok := subsetOf(selected, q.CorrectOptions); ok {
			return OutcomePartial, q.Marks * float64(hits) / float64(len(q.CorrectOptions))
		}
	}
	return OutcomeIncorrect, q.NegativeMarks
}

// subsetOf reports whether every selected id is correct, and how many.
func subsetOf(selected, correct []string) (int, bool) {
	want := make(map[string]struct{}, len(correct))
	for _, c := range correct {
		want[c] = struct{}{}
	}
	for _, s := range selected {
		if _, ok := want[s]; !ok {
			return 0, false
		}
	}
	return len(selected), true
}

// normalize trims ids, drops blanks and duplicates, keeping first-seen order.
func normalize(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
