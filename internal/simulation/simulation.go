// simulation/simulation.go
package simulation

import (
	"fmt"
	"strings"

	"github.com/pyqforge/backend/internal/domain/question"
)

// ChapterSpec describes one chapter of a synthetic corpus.
type ChapterSpec struct {
	Subject string
	Chapter string
	Count   int
	// Years are assigned round-robin. Empty means year 0 (unknown).
	Years []int
	// Types are assigned round-robin. Empty means single_correct only.
	Types []question.Type
}

var difficulties = []question.Difficulty{
	question.DifficultyEasy,
	question.DifficultyMedium,
	question.DifficultyHard,
}

// Corpus builds a deterministic corpus: the same specs always give the same
// questions with the same ids. Marks are +4/-1.
func Corpus(examType string, specs []ChapterSpec) []question.Question {
	var out []question.Question
	for _, spec := range specs {
		types := spec.Types
		if len(types) == 0 {
			types = []question.Type{question.TypeSingleCorrect}
		}
		for i := 0; i < spec.Count; i++ {
			year := 0
			if len(spec.Years) > 0 {
				year = spec.Years[i%len(spec.Years)]
			}
			out = append(out, build(examType, spec, i, year, difficulties[i%len(difficulties)], types[i%len(types)]))
		}
	}
	return out
}

func build(examType string, spec ChapterSpec, i, year int, d question.Difficulty, typ question.Type) question.Question {
	q := question.Question{
		ID:            fmt.Sprintf("%s-%s-%s-%03d", strings.ToLower(examType), slug(spec.Subject), slug(spec.Chapter), i+1),
		ExamType:      examType,
		Subject:       spec.Subject,
		Chapter:       spec.Chapter,
		Topic:         fmt.Sprintf("%s %d", spec.Chapter, i%3+1),
		Year:          year,
		Difficulty:    d,
		Type:          typ,
		Source:        "synthetic",
		Text:          fmt.Sprintf("[%s] %s question %d (%d)", spec.Subject, spec.Chapter, i+1, year),
		Explanation:   "Worked solution omitted in synthetic corpus.",
		Marks:         4,
		NegativeMarks: -1,
	}

	switch typ {
	case question.TypeInteger:
		q.CorrectOptions = []string{fmt.Sprint(i % 10)}
		q.NegativeMarks = 0
	case question.TypeMultipleCorrect:
		q.Options = options()
		q.CorrectOptions = []string{q.Options[i%4].ID, q.Options[(i+2)%4].ID}
	default:
		q.Options = options()
		q.CorrectOptions = []string{q.Options[i%4].ID}
	}
	return q
}

func options() []question.Option {
	return []question.Option{
		{ID: "a", Text: "Option A"},
		{ID: "b", Text: "Option B"},
		{ID: "c", Text: "Option C"},
		{ID: "d", Text: "Option D"},
	}
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// DefaultSpecs is a JEE Main style corpus large enough to fill the full
// three-section preset at any single difficulty.
func DefaultSpecs() []ChapterSpec {
	mixed := []question.Type{
		question.TypeSingleCorrect,
		question.TypeSingleCorrect,
		question.TypeMultipleCorrect,
		question.TypeInteger,
	}
	recent := []int{2024, 2023, 2022, 2021, 2020}
	older := []int{2019, 2017, 2015}
	patchy := []int{2023, 2018}

	var specs []ChapterSpec
	for _, subject := range []struct {
		name     string
		chapters []string
	}{
		{"Physics", []string{"Mechanics", "Electrostatics", "Optics", "Modern Physics"}},
		{"Chemistry", []string{"Organic Chemistry", "Chemical Bonding", "Thermodynamics", "Electrochemistry"}},
		{"Mathematics", []string{"Calculus", "Algebra", "Coordinate Geometry", "Probability"}},
	} {
		for i, chapter := range subject.chapters {
			years := recent
			count := 120
			switch i {
			case 2:
				years, count = older, 72
			case 3:
				years, count = patchy, 60
			}
			specs = append(specs, ChapterSpec{
				Subject: subject.name,
				Chapter: chapter,
				Count:   count,
				Years:   years,
				Types:   mixed,
			})
		}
	}
	return specs
}

// Default returns the DefaultSpecs corpus for JEE Main.
func Default() []question.Question {
	return Corpus("JEE_MAIN", DefaultSpecs())
}
