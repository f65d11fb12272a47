package diagnostics

import (
	"fmt"
	"strings"

	"github.com/pyqforge/backend/internal/domain/question"
)

var difficultyOrder = []question.Difficulty{
	question.DifficultyEasy,
	question.DifficultyMedium,
	question.DifficultyHard,
}

// Markdown renders the analysis as a short report.
func Markdown(a Analysis) string {
	var sb strings.Builder

	sb.WriteString("## Test Analysis\n\n")
	sb.WriteString(fmt.Sprintf("**Score:** %.2f/%.2f\n", a.ObtainedMarks, a.MaxMarks))
	sb.WriteString(fmt.Sprintf("**Accuracy:** %.1f%% (%d correct, %d incorrect, %d unattempted",
		a.Accuracy, a.Correct, a.Incorrect, a.Unattempted))
	if a.Partial > 0 {
		sb.WriteString(fmt.Sprintf(", %d partial", a.Partial))
	}
	sb.WriteString(")\n")
	if a.AvgTimePerAttempted > 0 {
		sb.WriteString(fmt.Sprintf("**Avg. time per attempted question:** %.0fs\n", a.AvgTimePerAttempted))
	}
	sb.WriteString("\n")

	sb.WriteString("### Subjects\n\n")
	sb.WriteString("| Subject | Correct | Incorrect | Unattempted | Accuracy | Marks |\n")
	sb.WriteString("|---------|---------|-----------|-------------|----------|-------|\n")
	for _, s := range a.SortedSubjects() {
		b := a.SubjectWise[s]
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %.0f%% | %.2f |\n",
			s, b.Correct, b.Incorrect, b.Unattempted, b.Accuracy, b.Marks))
	}
	sb.WriteString("\n")

	sb.WriteString("### Difficulty\n\n")
	for _, d := range difficultyOrder {
		t, ok := a.DifficultyWise[d]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s: %d correct, %d incorrect\n", d, t.Correct, t.Incorrect))
	}
	sb.WriteString("\n")

	if len(a.StrengthAreas) > 0 {
		sb.WriteString("### Strengths\n\n")
		for _, s := range a.StrengthAreas {
			sb.WriteString(fmt.Sprintf("- %s\n", s))
		}
		sb.WriteString("\n")
	}

	if len(a.WeaknessAreas) > 0 {
		sb.WriteString("### Weaknesses\n\n")
		for _, w := range a.WeaknessAreas {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
