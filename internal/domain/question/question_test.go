package question_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyqforge/backend/internal/domain/question"
)

func validQuestion() question.Question {
	return question.Question{
		ID:         "q1",
		ExamType:   "JEE_MAIN",
		Subject:    "Physics",
		Chapter:    "Kinematics",
		Year:       2023,
		Difficulty: question.DifficultyMedium,
		Type:       question.TypeSingleCorrect,
		Text:       "A ball is thrown...",
		Options: []question.Option{
			{ID: "a", Text: "1 m/s"},
			{ID: "b", Text: "2 m/s"},
		},
		CorrectOptions: []string{"a"},
		Marks:          4,
		NegativeMarks:  -1,
	}
}

func TestValidate(t *testing.T) {
	q := validQuestion()
	require.NoError(t, q.Validate())
}

func TestValidate_Failures(t *testing.T) {
	cases := map[string]func(q *question.Question){
		"missing id":          func(q *question.Question) { q.ID = "" },
		"missing chapter":     func(q *question.Question) { q.Chapter = "" },
		"bad difficulty":      func(q *question.Question) { q.Difficulty = "impossible" },
		"bad type":            func(q *question.Question) { q.Type = "essay" },
		"positive negative":   func(q *question.Question) { q.NegativeMarks = 1 },
		"negative marks":      func(q *question.Question) { q.Marks = -4 },
		"no correct":          func(q *question.Question) { q.CorrectOptions = nil },
		"unknown correct":     func(q *question.Question) { q.CorrectOptions = []string{"z"} },
		"single with two ids": func(q *question.Question) { q.CorrectOptions = []string{"a", "b"} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			q := validQuestion()
			mutate(&q)
			assert.Error(t, q.Validate())
		})
	}
}

func TestValidate_IntegerSkipsOptionCheck(t *testing.T) {
	q := validQuestion()
	q.Type = question.TypeInteger
	q.Options = nil
	q.CorrectOptions = []string{"42"}

	assert.NoError(t, q.Validate())
}

func TestIsCorrectSelection(t *testing.T) {
	q := validQuestion()
	q.Type = question.TypeMultipleCorrect
	q.Options = append(q.Options, question.Option{ID: "c", Text: "3 m/s"})
	q.CorrectOptions = []string{"a", "c"}

	assert.True(t, q.IsCorrectSelection([]string{"c", "a"}))
	assert.True(t, q.IsCorrectSelection([]string{"a", "c", "a"}))
	assert.False(t, q.IsCorrectSelection([]string{"a"}))
	assert.False(t, q.IsCorrectSelection([]string{"a", "b", "c"}))
	assert.False(t, q.IsCorrectSelection(nil))
}

func TestIsCorrectSelection_IntegerByValue(t *testing.T) {
	q := validQuestion()
	q.Type = question.TypeInteger
	q.Options = nil
	q.CorrectOptions = []string{"5"}

	for _, v := range []string{"5", "05", "+5", " 5 "} {
		assert.True(t, q.IsCorrectSelection([]string{v}), v)
	}
	assert.False(t, q.IsCorrectSelection([]string{"-5"}))
	assert.False(t, q.IsCorrectSelection([]string{"five"}))
}

func TestFilters(t *testing.T) {
	a := validQuestion()
	b := validQuestion()
	b.ID, b.Subject, b.Difficulty, b.ExamType = "q2", "Chemistry", question.DifficultyHard, "NEET"
	c := validQuestion()
	c.ID, c.Type = "q3", question.TypeInteger
	qs := []question.Question{a, b, c}

	assert.Len(t, question.FilterByExam(qs, "JEE_MAIN"), 2)
	assert.Len(t, question.FilterByExam(qs, ""), 3)
	assert.Len(t, question.FilterByDifficulty(qs, question.DifficultyHard), 1)
	assert.Len(t, question.FilterByDifficulty(qs, question.DifficultyMixed), 3)
	assert.Len(t, question.FilterBySubject(qs, "Physics"), 2)
	assert.Len(t, question.FilterByTypes(qs, question.TypeInteger), 1)
	assert.Equal(t, []string{"Chemistry", "Physics"}, question.Subjects(qs))
}
