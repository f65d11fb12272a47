package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyqforge/backend/internal/domain/question"
)

func mcq(typ question.Type) question.Question {
	return question.Question{
		ID:   "q1",
		Type: typ,
		Options: []question.Option{
			{ID: "a", Text: "1"}, {ID: "b", Text: "2"}, {ID: "c", Text: "3"}, {ID: "d", Text: "4"},
		},
	}
}

func TestParseAnswer_Commands(t *testing.T) {
	q := mcq(question.TypeSingleCorrect)

	cmd, sel, err := parseAnswer(" /submit ", q)
	require.NoError(t, err)
	assert.Equal(t, cmdSubmit, cmd)
	assert.Nil(t, sel)

	cmd, _, err = parseAnswer("/quit", q)
	require.NoError(t, err)
	assert.Equal(t, cmdQuit, cmd)

	cmd, sel, err = parseAnswer("", q)
	require.NoError(t, err)
	assert.Equal(t, cmdAnswer, cmd)
	assert.Empty(t, sel, "empty line skips the question")
}

func TestParseAnswer_MultipleCorrect(t *testing.T) {
	cmd, sel, err := parseAnswer("A, c", mcq(question.TypeMultipleCorrect))
	require.NoError(t, err)
	assert.Equal(t, cmdAnswer, cmd)
	assert.Equal(t, []string{"a", "c"}, sel)
}

func TestParseAnswer_Rejects(t *testing.T) {
	_, _, err := parseAnswer("e", mcq(question.TypeSingleCorrect))
	assert.Error(t, err)

	_, _, err = parseAnswer("a,b", mcq(question.TypeSingleCorrect))
	assert.Error(t, err)
}

func TestParseAnswer_Integer(t *testing.T) {
	q := question.Question{ID: "q2", Type: question.TypeInteger}
	_, sel, err := parseAnswer(" 42 ", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, sel)
}
