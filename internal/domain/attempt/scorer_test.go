package attempt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/question"
)

func single(id string) question.Question {
	return question.Question{
		ID:             id,
		Subject:        "Physics",
		Chapter:        "Optics",
		Difficulty:     question.DifficultyEasy,
		Type:           question.TypeSingleCorrect,
		Options:        []question.Option{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		CorrectOptions: []string{"a"},
		Marks:          4,
		NegativeMarks:  -2,
	}
}

func multi(id string) question.Question {
	q := single(id)
	q.Type = question.TypeMultipleCorrect
	q.CorrectOptions = []string{"a", "c"}
	return q
}

func scoreOne(t *testing.T, p attempt.Policy, q question.Question, selected ...string) attempt.QuestionResult {
	t.Helper()
	sheet := attempt.NewScorer(p).Score([]question.Question{q}, []attempt.Response{{QuestionID: q.ID, SelectedOptions: selected}})
	require.Len(t, sheet.Results, 1)
	return sheet.Results[0]
}

func TestScore_MarkingExample(t *testing.T) {
	q := single("q1")

	r := scoreOne(t, attempt.Policy{}, q, "a")
	assert.Equal(t, attempt.OutcomeCorrect, r.Outcome)
	assert.Equal(t, 4.0, r.Marks)

	r = scoreOne(t, attempt.Policy{}, q, "b")
	assert.Equal(t, attempt.OutcomeIncorrect, r.Outcome)
	assert.Equal(t, -2.0, r.Marks)

	r = scoreOne(t, attempt.Policy{}, q)
	assert.Equal(t, attempt.OutcomeUnattempted, r.Outcome)
	assert.Equal(t, 0.0, r.Marks)
}

func TestScore_MultiCorrectNoPartialCredit(t *testing.T) {
	q := multi("q1")

	assert.Equal(t, attempt.OutcomeIncorrect, scoreOne(t, attempt.Policy{}, q, "a").Outcome)
	assert.Equal(t, attempt.OutcomeCorrect, scoreOne(t, attempt.Policy{}, q, "c", "a").Outcome)
	assert.Equal(t, attempt.OutcomeIncorrect, scoreOne(t, attempt.Policy{}, q, "a", "c", "d").Outcome)
}

func TestScore_MultiCorrectPartialCreditEnabled(t *testing.T) {
	q := multi("q1")
	p := attempt.Policy{PartialCredit: true}

	r := scoreOne(t, p, q, "a")
	assert.Equal(t, attempt.OutcomePartial, r.Outcome)
	assert.Equal(t, 2.0, r.Marks)

	r = scoreOne(t, p, q, "a", "b")
	assert.Equal(t, attempt.OutcomeIncorrect, r.Outcome)
	assert.Equal(t, -2.0, r.Marks)

	// Partial credit never applies to single_correct questions.
	assert.Equal(t, attempt.OutcomeIncorrect, scoreOne(t, p, single("q2"), "b").Outcome)
}

func TestScore_PartialCreditBySubject(t *testing.T) {
	physics := multi("q1")
	chemistry := multi("q2")
	chemistry.Subject = "Chemistry"
	p := attempt.Policy{PartialCreditSubjects: map[string]bool{"Chemistry": true}}

	assert.Equal(t, attempt.OutcomeIncorrect, scoreOne(t, p, physics, "a").Outcome)

	r := scoreOne(t, p, chemistry, "a")
	assert.Equal(t, attempt.OutcomePartial, r.Outcome)
	assert.Equal(t, 2.0, r.Marks)
}

func TestScore_NegativeTimeClamped(t *testing.T) {
	q := single("q1")
	sheet := attempt.NewScorer(attempt.Policy{}).Score([]question.Question{q},
		[]attempt.Response{{QuestionID: q.ID, SelectedOptions: []string{"a"}, TimeSpentSeconds: -30}})
	assert.Equal(t, 0, sheet.Results[0].TimeSpentSeconds)
}

func TestScore_BlankQuestionIDDropped(t *testing.T) {
	q := single("q1")
	sheet := attempt.NewScorer(attempt.Policy{}).Score([]question.Question{q}, []attempt.Response{
		{QuestionID: "", SelectedOptions: []string{"a"}},
		{QuestionID: q.ID, SelectedOptions: []string{"a"}},
	})
	assert.Equal(t, []string{""}, sheet.Dropped)
	assert.Equal(t, 1, sheet.Correct)
}

func TestScore_BlankSelectionsAreUnattempted(t *testing.T) {
	r := scoreOne(t, attempt.Policy{}, single("q1"), " ", "")
	assert.Equal(t, attempt.OutcomeUnattempted, r.Outcome)
}

func TestScore_Aggregates(t *testing.T) {
	qs := []question.Question{single("q1"), single("q2"), single("q3"), single("q4")}
	responses := []attempt.Response{
		{QuestionID: "q1", SelectedOptions: []string{"a"}},
		{QuestionID: "q2", SelectedOptions: []string{"b"}},
		{QuestionID: "q3", SelectedOptions: []string{"a"}},
	}

	sheet := attempt.NewScorer(attempt.Policy{}).Score(qs, responses)

	assert.Equal(t, 4, sheet.TotalQuestions)
	assert.Equal(t, 2, sheet.Correct)
	assert.Equal(t, 1, sheet.Incorrect)
	assert.Equal(t, 1, sheet.Unattempted)
	assert.Equal(t, 6.0, sheet.ObtainedMarks)
	assert.Equal(t, 16.0, sheet.MaxMarks)
	assert.Equal(t, 50.0, sheet.Accuracy)
}

func TestScore_NegativeTotal(t *testing.T) {
	qs := []question.Question{single("q1"), single("q2")}
	responses := []attempt.Response{
		{QuestionID: "q1", SelectedOptions: []string{"b"}},
		{QuestionID: "q2", SelectedOptions: []string{"c"}},
	}

	sheet := attempt.NewScorer(attempt.Policy{}).Score(qs, responses)
	assert.Equal(t, -4.0, sheet.ObtainedMarks)
}

func TestScore_DropsUnknownQuestions(t *testing.T) {
	qs := []question.Question{single("q1")}
	responses := []attempt.Response{
		{QuestionID: "ghost", SelectedOptions: []string{"a"}},
		{QuestionID: "q1", SelectedOptions: []string{"a"}},
	}

	sheet := attempt.NewScorer(attempt.Policy{}).Score(qs, responses)

	assert.Equal(t, []string{"ghost"}, sheet.Dropped)
	assert.Equal(t, 1, sheet.Correct)
	assert.Len(t, sheet.Results, 1)
}

func TestScore_LastResponseWins(t *testing.T) {
	responses := []attempt.Response{
		{QuestionID: "q1", SelectedOptions: []string{"b"}},
		{QuestionID: "q1", SelectedOptions: []string{"a"}, TimeSpentSeconds: 30},
	}

	sheet := attempt.NewScorer(attempt.Policy{}).Score([]question.Question{single("q1")}, responses)

	assert.Equal(t, attempt.OutcomeCorrect, sheet.Results[0].Outcome)
	assert.Equal(t, 30, sheet.Results[0].TimeSpentSeconds)
}

func TestScore_Idempotent(t *testing.T) {
	qs := []question.Question{single("q1"), multi("q2"), single("q3")}
	responses := []attempt.Response{
		{QuestionID: "q1", SelectedOptions: []string{"a"}},
		{QuestionID: "q2", SelectedOptions: []string{"a"}},
		{QuestionID: "zzz", SelectedOptions: []string{"a"}},
	}
	s := attempt.NewScorer(attempt.Policy{})

	assert.Equal(t, s.Score(qs, responses), s.Score(qs, responses))
}

func TestScore_EmptyTest(t *testing.T) {
	sheet := attempt.NewScorer(attempt.Policy{}).Score(nil, nil)

	assert.Equal(t, 0, sheet.TotalQuestions)
	assert.Equal(t, 0.0, sheet.Accuracy)
}
