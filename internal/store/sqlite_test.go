package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/store"
)

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func q(id, exam, chapter string) question.Question {
	return question.Question{
		ID:             id,
		ExamType:       exam,
		Subject:        "Physics",
		Chapter:        chapter,
		Year:           2021,
		Difficulty:     question.DifficultyMedium,
		Type:           question.TypeSingleCorrect,
		Text:           "Question " + id,
		Options:        []question.Option{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}},
		CorrectOptions: []string{"b"},
		Explanation:    "because",
		Marks:          4,
		NegativeMarks:  -1,
	}
}

func seedTest(t *testing.T, s *store.SQLiteStore) *mocktest.MockTest {
	t.Helper()
	qs := []question.Question{q("q1", "JEE_MAIN", "Optics"), q("q2", "JEE_MAIN", "Waves")}
	mt := mocktest.New("Practice", "JEE_MAIN", question.DifficultyMixed, 60,
		mocktest.MarkingScheme{Positive: 4, Negative: -1}, nil, qs,
		time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveMockTest(context.Background(), mt))
	return mt
}

func TestQuestions_SaveListCount(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveQuestions(ctx, []question.Question{
		q("q1", "JEE_MAIN", "Optics"),
		q("q2", "NEET", "Optics"),
		q("q3", "JEE_MAIN", "Waves"),
	}))

	jee, err := s.ListQuestions(ctx, "JEE_MAIN")
	require.NoError(t, err)
	require.Len(t, jee, 2)
	assert.Equal(t, "q1", jee[0].ID)
	assert.Equal(t, []string{"b"}, jee[0].CorrectOptions)

	n, err := s.CountQuestions(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	viaProvider, err := s.Questions(ctx, "NEET")
	require.NoError(t, err)
	assert.Len(t, viaProvider, 1)
}

func TestQuestions_Upsert(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveQuestions(ctx, []question.Question{q("q1", "JEE_MAIN", "Optics")}))
	updated := q("q1", "JEE_MAIN", "Thermodynamics")
	require.NoError(t, s.SaveQuestions(ctx, []question.Question{updated}))

	qs, err := s.ListQuestions(ctx, "")
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Thermodynamics", qs[0].Chapter)
}

func TestListQuestions_EmptyIsNotNil(t *testing.T) {
	qs, err := newStore(t).ListQuestions(context.Background(), "JEE_MAIN")
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestMockTest_RoundTrip(t *testing.T) {
	s := newStore(t)
	mt := seedTest(t, s)

	got, err := s.GetMockTest(context.Background(), mt.ID)
	require.NoError(t, err)

	assert.Equal(t, mt.Name, got.Name)
	assert.Equal(t, mt.Marking, got.Marking)
	assert.Equal(t, 8.0, got.TotalMarks)
	assert.True(t, mt.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "q1", got.Questions[0].ID)
	assert.Equal(t, "q2", got.Questions[1].ID)
}

func TestGetMockTest_NotFound(t *testing.T) {
	_, err := newStore(t).GetMockTest(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAttempt_Lifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mt := seedTest(t, s)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	a := attempt.New(mt.ID, start)
	require.NoError(t, s.SaveAttempt(ctx, a))

	require.NoError(t, s.SaveResponses(ctx, a.ID, []attempt.Response{
		{QuestionID: "q1", SelectedOptions: []string{"a"}},
		{QuestionID: "q2"},
	}))
	require.NoError(t, s.SaveResponses(ctx, a.ID, []attempt.Response{
		{QuestionID: "q1", SelectedOptions: []string{"b"}, TimeSpentSeconds: 30},
	}))

	drafts, err := s.GetResponses(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, []string{"b"}, drafts[0].SelectedOptions)
	assert.Equal(t, 30, drafts[0].TimeSpentSeconds)
	assert.Equal(t, []string{}, drafts[1].SelectedOptions)

	inProgress, err := s.ListAttemptsByStatus(ctx, attempt.StatusInProgress)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)

	require.NoError(t, a.Finalize(attempt.StatusCompleted, start.Add(20*time.Minute), 4, mt.TimeLimit()))
	an := &diagnostics.Analysis{AttemptID: a.ID, TestID: mt.ID, Correct: 1, CreatedAt: start.Add(20 * time.Minute)}
	final := []attempt.Response{{QuestionID: "q1", SelectedOptions: []string{"b"}}}
	require.NoError(t, s.FinalizeAttempt(ctx, a, final, an))

	got, err := s.GetAttempt(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.StatusCompleted, got.Status)
	assert.Equal(t, 1200, got.TimeSpentSeconds)
	require.NotNil(t, got.EndedAt)
	assert.True(t, a.EndedAt.Equal(*got.EndedAt))

	stored, err := s.GetResponses(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	gotAnalysis, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotAnalysis.Correct)

	inProgress, err = s.ListAttemptsByStatus(ctx, attempt.StatusInProgress)
	require.NoError(t, err)
	assert.Empty(t, inProgress)
}

func TestFinalizeAttempt_Twice(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mt := seedTest(t, s)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	a := attempt.New(mt.ID, start)
	require.NoError(t, s.SaveAttempt(ctx, a))

	first := *a
	require.NoError(t, first.Finalize(attempt.StatusCompleted, start.Add(time.Minute), 0, 0))
	require.NoError(t, s.FinalizeAttempt(ctx, &first, nil, &diagnostics.Analysis{AttemptID: a.ID}))

	second := *a
	require.NoError(t, second.Finalize(attempt.StatusAutoSubmitted, start.Add(time.Hour), 0, 0))
	err := s.FinalizeAttempt(ctx, &second, nil, &diagnostics.Analysis{AttemptID: a.ID})
	assert.ErrorIs(t, err, attempt.ErrAlreadyFinalized)

	got, err := s.GetAttempt(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.StatusCompleted, got.Status)

	err = s.SaveResponses(ctx, a.ID, []attempt.Response{{QuestionID: "q1"}})
	assert.ErrorIs(t, err, attempt.ErrAlreadyFinalized)
}

func TestAttempt_NotFound(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.GetAttempt(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetAnalysis(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.SaveResponses(ctx, "missing", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	end := time.Now()
	err = s.FinalizeAttempt(ctx, &attempt.Attempt{ID: "missing", Status: attempt.StatusCompleted, EndedAt: &end}, nil, &diagnostics.Analysis{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAttemptsByStatus_Many(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	mt := seedTest(t, s)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		a := attempt.New(mt.ID, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.SaveAttempt(ctx, a), fmt.Sprintf("attempt %d", i))
	}

	got, err := s.ListAttemptsByStatus(ctx, attempt.StatusInProgress)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
