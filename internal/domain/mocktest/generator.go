package mocktest

import (
	"fmt"
	"time"

	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/domain/trend"
)

// GenerateOptions are the per-request knobs of a generation call.
type GenerateOptions struct {
	Name        string
	Difficulty  question.Difficulty
	CurrentYear int
	// QuestionCount overrides TotalQuestions for section-less configs.
	QuestionCount int
	PartialCredit bool
	Now           time.Time
}

// Generator turns a corpus and an exam config into a MockTest.
type Generator struct {
	selector *Selector
}

func NewGenerator(selector *Selector) *Generator {
	if selector == nil {
		selector = NewSelector(nil)
	}
	return &Generator{selector: selector}
}

// Generate runs trend analysis, distribution optimization and selection.
// The corpus is expected to be pre-filtered to cfg.ExamType.
func (g *Generator) Generate(corpus []question.Question, cfg ExamConfig, opts GenerateOptions) (*MockTest, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.CurrentYear == 0 {
		opts.CurrentYear = opts.Now.Year()
	}
	name := opts.Name
	if name == "" {
		name = cfg.Name
	}

	marking := MarkingScheme{PartialCredit: opts.PartialCredit}
	if cfg.Marking != nil {
		marking.Positive = cfg.Marking.Positive
		marking.Negative = cfg.Marking.Negative
		marking.PartialCredit = marking.PartialCredit || cfg.Marking.PartialCredit
	}

	if len(cfg.Sections) == 0 {
		n := cfg.TotalQuestions
		if opts.QuestionCount > 0 {
			n = opts.QuestionCount
		}
		qs, err := g.fill(corpus, opts.Difficulty, opts.CurrentYear, n)
		if err != nil {
			return nil, err
		}
		qs = stamp(qs, cfg.Marking)
		return New(name, cfg.ExamType, opts.Difficulty, cfg.TimeLimitMinutes, marking, nil, qs, opts.Now), nil
	}

	if opts.QuestionCount > 0 && opts.QuestionCount != cfg.QuestionCount() {
		return nil, fmt.Errorf("%w: %s tests have a fixed size of %d questions",
			ErrInvalidCount, cfg.ExamType, cfg.QuestionCount())
	}

	var all []question.Question
	summaries := make([]SectionSummary, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		qs, summary, err := g.fillSection(corpus, sec, opts)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", sec.Subject, err)
		}
		scheme := cfg.Marking
		if sec.Marking != nil {
			scheme = sec.Marking
		}
		summary.PartialCredit = marking.PartialCredit || (scheme != nil && scheme.PartialCredit)
		all = append(all, stamp(qs, scheme)...)
		summaries = append(summaries, summary)
	}
	return New(name, cfg.ExamType, opts.Difficulty, cfg.TimeLimitMinutes, marking, summaries, all, opts.Now), nil
}

func (g *Generator) fillSection(corpus []question.Question, sec Section, opts GenerateOptions) ([]question.Question, SectionSummary, error) {
	difficulty := opts.Difficulty
	if sec.Difficulty != "" {
		difficulty = sec.Difficulty
	}
	subject := question.FilterBySubject(corpus, sec.Subject)
	summary := SectionSummary{Subject: sec.Subject, MCQCount: sec.MCQCount, IntegerCount: sec.IntegerCount}

	var out []question.Question
	if sec.MCQCount > 0 {
		mcq := question.FilterByTypes(subject, question.TypeSingleCorrect, question.TypeMultipleCorrect)
		qs, err := g.fill(mcq, difficulty, opts.CurrentYear, sec.MCQCount)
		if err != nil {
			return nil, summary, fmt.Errorf("mcq part: %w", err)
		}
		out = append(out, qs...)
	}
	if sec.IntegerCount > 0 {
		integer := question.FilterByTypes(subject, question.TypeInteger)
		qs, err := g.fill(integer, difficulty, opts.CurrentYear, sec.IntegerCount)
		if err != nil {
			return nil, summary, fmt.Errorf("integer part: %w", err)
		}
		out = append(out, qs...)
	}
	summary.QuestionCount = len(out)
	return out, summary, nil
}

// fill analyzes pool, then selects n questions from its difficulty-filtered subset.
func (g *Generator) fill(pool []question.Question, difficulty question.Difficulty, currentYear, n int) ([]question.Question, error) {
	stats := trend.Optimize(trend.Analyze(pool, currentYear))
	eligible := question.FilterByDifficulty(pool, difficulty)
	return g.selector.Select(eligible, stats, n)
}

// stamp returns copies of qs carrying the scheme's marks.
func stamp(qs []question.Question, scheme *MarkingScheme) []question.Question {
	if scheme == nil {
		return qs
	}
	out := make([]question.Question, len(qs))
	for i, q := range qs {
		q.Marks = scheme.Positive
		q.NegativeMarks = scheme.Negative
		out[i] = q
	}
	return out
}
