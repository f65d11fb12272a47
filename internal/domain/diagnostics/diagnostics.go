package diagnostics

import (
	"sort"
	"time"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/question"
)

const (
	StrengthThreshold = 70.0 // accuracy >= 70% on attempted questions
	WeaknessThreshold = 40.0 // accuracy < 40% on attempted questions
)

// Tally counts outcomes for one slice of the test.
type Tally struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	Partial     int `json:"partial"`
	Unattempted int `json:"unattempted"`
}

// Attempted is the denominator for subject accuracy: unattempted
// questions are excluded so skipping is not punished as a wrong answer.
func (t Tally) Attempted() int {
	return t.Correct + t.Incorrect + t.Partial
}

// Accuracy is correct / attempted × 100, or 0 when nothing was attempted.
func (t Tally) Accuracy() float64 {
	if t.Attempted() == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted()) * 100
}

func (t *Tally) add(o attempt.Outcome) {
	switch o {
	case attempt.OutcomeCorrect:
		t.Correct++
	case attempt.OutcomeIncorrect:
		t.Incorrect++
	case attempt.OutcomePartial:
		t.Partial++
	default:
		t.Unattempted++
	}
}

type SubjectBreakdown struct {
	Tally
	Accuracy float64 `json:"accuracy"`
	Marks    float64 `json:"marks"`
}

type ChapterBreakdown struct {
	Subject string `json:"subject"`
	Chapter string `json:"chapter"`
	Tally
	Accuracy float64 `json:"accuracy"`
}

// Analysis is the diagnostic snapshot of one finalized attempt.
// AvgTimePerAttempted is the mean seconds spent on attempted questions.
type Analysis struct {
	AttemptID           string                        `json:"attempt_id"`
	TestID              string                        `json:"test_id"`
	TotalQuestions      int                           `json:"total_questions"`
	Correct             int                           `json:"correct"`
	Incorrect           int                           `json:"incorrect"`
	Partial             int                           `json:"partial"`
	Unattempted         int                           `json:"unattempted"`
	Accuracy            float64                       `json:"accuracy"`
	ObtainedMarks       float64                       `json:"obtained_marks"`
	MaxMarks            float64                       `json:"max_marks"`
	SubjectWise         map[string]SubjectBreakdown   `json:"subject_wise"`
	DifficultyWise      map[question.Difficulty]Tally `json:"difficulty_wise"`
	ChapterWise         []ChapterBreakdown            `json:"chapter_wise"`
	StrengthAreas       []string                      `json:"strength_areas"`
	WeaknessAreas       []string                      `json:"weakness_areas"`
	AvgTimePerAttempted float64                       `json:"avg_time_per_attempted"`
	DroppedResponses    []string                      `json:"dropped_responses,omitempty"`
	CreatedAt           time.Time                     `json:"created_at"`
}

// Diagnose builds the subject, difficulty and chapter breakdowns of a score
// sheet and classifies subjects. Subjects between the two thresholds, or
// with nothing attempted, are in neither area.
func Diagnose(sheet attempt.ScoreSheet) Analysis {
	a := Analysis{
		TotalQuestions:   sheet.TotalQuestions,
		Correct:          sheet.Correct,
		Incorrect:        sheet.Incorrect,
		Partial:          sheet.Partial,
		Unattempted:      sheet.Unattempted,
		Accuracy:         sheet.Accuracy,
		ObtainedMarks:    sheet.ObtainedMarks,
		MaxMarks:         sheet.MaxMarks,
		SubjectWise:      make(map[string]SubjectBreakdown),
		DifficultyWise:   make(map[question.Difficulty]Tally),
		StrengthAreas:    []string{},
		WeaknessAreas:    []string{},
		DroppedResponses: sheet.Dropped,
	}

	type chapterKey struct{ subject, chapter string }
	chapters := make(map[chapterKey]*ChapterBreakdown)
	var chapterOrder []chapterKey

	var attemptedTime, attempted int
	for _, r := range sheet.Results {
		sb := a.SubjectWise[r.Subject]
		sb.add(r.Outcome)
		sb.Marks += r.Marks
		a.SubjectWise[r.Subject] = sb

		dt := a.DifficultyWise[r.Difficulty]
		dt.add(r.Outcome)
		a.DifficultyWise[r.Difficulty] = dt

		key := chapterKey{r.Subject, r.Chapter}
		cb, ok := chapters[key]
		if !ok {
			cb = &ChapterBreakdown{Subject: r.Subject, Chapter: r.Chapter}
			chapters[key] = cb
			chapterOrder = append(chapterOrder, key)
		}
		cb.add(r.Outcome)

		if r.Outcome != attempt.OutcomeUnattempted {
			attempted++
			attemptedTime += r.TimeSpentSeconds
		}
	}

	for subject, sb := range a.SubjectWise {
		sb.Accuracy = sb.Tally.Accuracy()
		a.SubjectWise[subject] = sb

		if sb.Attempted() == 0 {
			continue
		}
		switch {
		case sb.Accuracy >= StrengthThreshold:
			a.StrengthAreas = append(a.StrengthAreas, subject)
		case sb.Accuracy < WeaknessThreshold:
			a.WeaknessAreas = append(a.WeaknessAreas, subject)
		}
	}
	sort.Strings(a.StrengthAreas)
	sort.Strings(a.WeaknessAreas)

	a.ChapterWise = make([]ChapterBreakdown, 0, len(chapterOrder))
	for _, key := range chapterOrder {
		cb := chapters[key]
		cb.Accuracy = cb.Tally.Accuracy()
		a.ChapterWise = append(a.ChapterWise, *cb)
	}

	if attempted > 0 {
		a.AvgTimePerAttempted = float64(attemptedTime) / float64(attempted)
	}
	return a
}

// SortedSubjects returns subject names in a stable order for rendering.
func (a *Analysis) SortedSubjects() []string {
	out := make([]string, 0, len(a.SubjectWise))
	for s := range a.SubjectWise {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
