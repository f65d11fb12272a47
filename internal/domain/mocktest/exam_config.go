package mocktest

import "github.com/pyqforge/backend/internal/domain/question"

// Section prescribes the shape of one subject block of an exam.
type Section struct {
	Subject      string
	MCQCount     int
	IntegerCount int
	// Difficulty overrides the request's difficulty filter for this section.
	Difficulty question.Difficulty
	// Marking overrides the exam-wide scheme for this section.
	Marking *MarkingScheme
}

func (s Section) QuestionCount() int {
	return s.MCQCount + s.IntegerCount
}

// ExamConfig describes how tests for one exam type are assembled.
type ExamConfig struct {
	ExamType         string
	Name             string
	TimeLimitMinutes int
	// Marking is stamped onto every selected question. Nil keeps each
	// question's own marks.
	Marking *MarkingScheme
	// Sections, when present, are filled independently in declared order.
	Sections []Section
	// TotalQuestions is used when there are no sections.
	TotalQuestions int
}

// QuestionCount returns the number of questions a test of this config holds.
func (c ExamConfig) QuestionCount() int {
	if len(c.Sections) == 0 {
		return c.TotalQuestions
	}
	n := 0
	for _, s := range c.Sections {
		n += s.QuestionCount()
	}
	return n
}

const (
	ExamJEEMain = "JEE_MAIN"
	ExamNEET    = "NEET"
)

var presets = map[string]ExamConfig{
	ExamJEEMain: {
		ExamType:         ExamJEEMain,
		Name:             "JEE Main Mock Test",
		TimeLimitMinutes: 180,
		Marking:          &MarkingScheme{Positive: 4, Negative: -1},
		Sections: []Section{
			{Subject: "Physics", MCQCount: 20, IntegerCount: 5},
			{Subject: "Chemistry", MCQCount: 20, IntegerCount: 5},
			{Subject: "Mathematics", MCQCount: 20, IntegerCount: 5},
		},
	},
	ExamNEET: {
		ExamType:         ExamNEET,
		Name:             "NEET Mock Test",
		TimeLimitMinutes: 200,
		Marking:          &MarkingScheme{Positive: 4, Negative: -1},
		Sections: []Section{
			{Subject: "Physics", MCQCount: 45},
			{Subject: "Chemistry", MCQCount: 45},
			{Subject: "Biology", MCQCount: 90},
		},
	},
}

// DefaultConfig returns the single-section config used for exam types
// without a preset: 30 questions, one hour, per-question marks.
func DefaultConfig(examType string) ExamConfig {
	return ExamConfig{
		ExamType:         examType,
		Name:             examType + " Practice Test",
		TimeLimitMinutes: 60,
		TotalQuestions:   30,
	}
}

// ConfigFor returns the preset for examType, or DefaultConfig.
func ConfigFor(examType string) ExamConfig {
	if cfg, ok := presets[examType]; ok {
		return cfg
	}
	return DefaultConfig(examType)
}
