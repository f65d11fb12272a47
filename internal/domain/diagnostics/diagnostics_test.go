package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
	"github.com/pyqforge/backend/internal/domain/question"
)

func results(subject string, d question.Difficulty, correct, incorrect, unattempted int) []attempt.QuestionResult {
	var out []attempt.QuestionResult
	add := func(n int, o attempt.Outcome, marks float64) {
		for i := 0; i < n; i++ {
			out = append(out, attempt.QuestionResult{
				Subject:          subject,
				Chapter:          subject + " basics",
				Difficulty:       d,
				Outcome:          o,
				Marks:            marks,
				TimeSpentSeconds: 60,
			})
		}
	}
	add(correct, attempt.OutcomeCorrect, 4)
	add(incorrect, attempt.OutcomeIncorrect, -1)
	add(unattempted, attempt.OutcomeUnattempted, 0)
	return out
}

func sheetOf(rs ...[]attempt.QuestionResult) attempt.ScoreSheet {
	var s attempt.ScoreSheet
	for _, group := range rs {
		for _, r := range group {
			s.Results = append(s.Results, r)
			s.TotalQuestions++
			s.ObtainedMarks += r.Marks
			switch r.Outcome {
			case attempt.OutcomeCorrect:
				s.Correct++
			case attempt.OutcomeIncorrect:
				s.Incorrect++
			default:
				s.Unattempted++
			}
		}
	}
	return s
}

func TestDiagnose_StrengthAndWeakness(t *testing.T) {
	sheet := sheetOf(
		results("Physics", question.DifficultyEasy, 8, 2, 0),
		results("Chemistry", question.DifficultyHard, 2, 8, 0),
	)

	a := diagnostics.Diagnose(sheet)

	assert.Equal(t, 80.0, a.SubjectWise["Physics"].Accuracy)
	assert.Equal(t, 20.0, a.SubjectWise["Chemistry"].Accuracy)
	assert.Equal(t, []string{"Physics"}, a.StrengthAreas)
	assert.Equal(t, []string{"Chemistry"}, a.WeaknessAreas)
}

func TestDiagnose_UnattemptedExcludedFromDenominator(t *testing.T) {
	// 7 correct out of 10 attempted is a strength even with 10 skipped;
	// counting the skips would drop it to 35% and flip it to a weakness.
	sheet := sheetOf(results("Maths", question.DifficultyMedium, 7, 3, 10))

	a := diagnostics.Diagnose(sheet)

	maths := a.SubjectWise["Maths"]
	assert.Equal(t, 10, maths.Unattempted)
	assert.Equal(t, 70.0, maths.Accuracy)
	assert.Equal(t, []string{"Maths"}, a.StrengthAreas)
	assert.Empty(t, a.WeaknessAreas)
}

func TestDiagnose_MiddleBandOmitted(t *testing.T) {
	sheet := sheetOf(
		results("Physics", question.DifficultyEasy, 5, 5, 0),
		results("Chemistry", question.DifficultyEasy, 4, 6, 0),
	)

	a := diagnostics.Diagnose(sheet)

	assert.Empty(t, a.StrengthAreas)
	assert.Empty(t, a.WeaknessAreas)
	assert.Equal(t, 40.0, a.SubjectWise["Chemistry"].Accuracy)
}

func TestDiagnose_NothingAttemptedIsNeither(t *testing.T) {
	a := diagnostics.Diagnose(sheetOf(results("Biology", question.DifficultyEasy, 0, 0, 5)))

	assert.Empty(t, a.StrengthAreas)
	assert.Empty(t, a.WeaknessAreas)
	assert.Equal(t, 0.0, a.AvgTimePerAttempted)
}

func TestDiagnose_DifficultyAndChapterBreakdown(t *testing.T) {
	sheet := sheetOf(
		results("Physics", question.DifficultyEasy, 3, 1, 0),
		results("Physics", question.DifficultyHard, 1, 2, 1),
	)

	a := diagnostics.Diagnose(sheet)

	assert.Equal(t, 3, a.DifficultyWise[question.DifficultyEasy].Correct)
	assert.Equal(t, 2, a.DifficultyWise[question.DifficultyHard].Incorrect)
	require.Len(t, a.ChapterWise, 1)
	assert.Equal(t, 4, a.ChapterWise[0].Correct)
	assert.Equal(t, 60.0, a.AvgTimePerAttempted)
	assert.Equal(t, 4.0*4-3, a.SubjectWise["Physics"].Marks)
}

func TestDiagnose_PartialCountsAsAttempted(t *testing.T) {
	sheet := attempt.ScoreSheet{
		TotalQuestions: 2,
		Correct:        1,
		Partial:        1,
		Results: []attempt.QuestionResult{
			{Subject: "Physics", Difficulty: question.DifficultyEasy, Outcome: attempt.OutcomeCorrect},
			{Subject: "Physics", Difficulty: question.DifficultyEasy, Outcome: attempt.OutcomePartial},
		},
	}

	a := diagnostics.Diagnose(sheet)

	assert.Equal(t, 50.0, a.SubjectWise["Physics"].Accuracy)
	assert.Equal(t, 1, a.SubjectWise["Physics"].Partial)
}

func TestDiagnose_Idempotent(t *testing.T) {
	sheet := sheetOf(
		results("Physics", question.DifficultyEasy, 8, 2, 0),
		results("Chemistry", question.DifficultyHard, 2, 8, 3),
	)

	assert.Equal(t, diagnostics.Diagnose(sheet), diagnostics.Diagnose(sheet))
}

func TestMarkdown(t *testing.T) {
	a := diagnostics.Diagnose(sheetOf(
		results("Physics", question.DifficultyEasy, 8, 2, 0),
		results("Chemistry", question.DifficultyHard, 2, 8, 0),
	))

	md := diagnostics.Markdown(a)

	assert.Contains(t, md, "## Test Analysis")
	assert.Contains(t, md, "| Physics | 8 | 2 | 0 | 80% |")
	assert.Contains(t, md, "### Strengths\n\n- Physics")
	assert.Contains(t, md, "### Weaknesses\n\n- Chemistry")
	assert.Contains(t, md, "- hard: 2 correct, 8 incorrect")
}
