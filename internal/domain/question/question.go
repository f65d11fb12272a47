package question

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyMixed is a filter value only; no question carries it.
	DifficultyMixed Difficulty = "mixed"
)

// Valid reports whether d is a concrete question difficulty.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// IsFilter reports whether d restricts selection at all.
func (d Difficulty) IsFilter() bool {
	return d != "" && d != DifficultyMixed
}

type Type string

const (
	TypeSingleCorrect   Type = "single_correct"
	TypeMultipleCorrect Type = "multiple_correct"
	TypeInteger         Type = "integer"
)

func (t Type) Valid() bool {
	return t == TypeSingleCorrect || t == TypeMultipleCorrect || t == TypeInteger
}

// IsMCQ reports whether the question is answered by picking options.
func (t Type) IsMCQ() bool {
	return t == TypeSingleCorrect || t == TypeMultipleCorrect
}

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single previous-year question. Values are treated as
// immutable once loaded from the corpus.
type Question struct {
	ID             string     `json:"id"`
	ExamType       string     `json:"exam_type"`
	Subject        string     `json:"subject"`
	Chapter        string     `json:"chapter"`
	Topic          string     `json:"topic,omitempty"`
	Year           int        `json:"year"`
	Difficulty     Difficulty `json:"difficulty"`
	Type           Type       `json:"type"`
	Source         string     `json:"source,omitempty"`
	Text           string     `json:"text"`
	Options        []Option   `json:"options"`
	CorrectOptions []string   `json:"correct_options"`
	Explanation    string     `json:"explanation,omitempty"`
	Marks          float64    `json:"marks"`
	NegativeMarks  float64    `json:"negative_marks"`
}

var (
	ErrMissingID       = errors.New("question id cannot be empty")
	ErrMissingChapter  = errors.New("question subject and chapter cannot be empty")
	ErrInvalidMarks    = errors.New("marks must satisfy negative_marks <= 0 <= marks")
	ErrNoCorrectOption = errors.New("question has no correct option")
)

// Validate checks the corpus invariants for a single question.
func (q *Question) Validate() error {
	if q.ID == "" {
		return ErrMissingID
	}
	if q.Subject == "" || q.Chapter == "" {
		return fmt.Errorf("question %s: %w", q.ID, ErrMissingChapter)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("question %s: invalid difficulty %q", q.ID, q.Difficulty)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("question %s: invalid type %q", q.ID, q.Type)
	}
	if q.NegativeMarks > 0 || q.Marks < 0 {
		return fmt.Errorf("question %s: %w", q.ID, ErrInvalidMarks)
	}
	if len(q.CorrectOptions) == 0 {
		return fmt.Errorf("question %s: %w", q.ID, ErrNoCorrectOption)
	}
	if q.Type == TypeSingleCorrect && len(q.CorrectOptions) != 1 {
		return fmt.Errorf("question %s: single_correct requires exactly one correct option", q.ID)
	}

	// Integer answers are free-form values; there is no option list to check against.
	if q.Type == TypeInteger {
		return nil
	}

	known := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		known[o.ID] = struct{}{}
	}
	for _, c := range q.CorrectOptions {
		if _, ok := known[c]; !ok {
			return fmt.Errorf("question %s: correct option %q is not an option", q.ID, c)
		}
	}
	return nil
}

// IsCorrectSelection compares a selection with the correct option set,
// ignoring order and duplicates. Integer answers compare by value, so "05"
// and "+5" match "5".
func (q *Question) IsCorrectSelection(selected []string) bool {
	norm := strings.TrimSpace
	if q.Type == TypeInteger {
		norm = canonicalInteger
	}
	want := toSet(q.CorrectOptions, norm)
	got := toSet(selected, norm)
	if len(want) != len(got) {
		return false
	}
	for k := range got {
		if _, ok := want[k]; !ok {
			return false
		}
	}
	return true
}

func toSet(ids []string, norm func(string) string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		s[norm(v)] = struct{}{}
	}
	return s
}

// canonicalInteger renders v in canonical decimal form. Values that are not
// integers are compared as trimmed text.
func canonicalInteger(v string) string {
	v = strings.TrimSpace(v)
	n, err := strconv.Atoi(v)
	if err != nil {
		return v
	}
	return strconv.Itoa(n)
}
