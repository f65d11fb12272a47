package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/pyqforge/backend/internal/domain/question"
)

// FileProvider reads a JSON array of questions from disk. The file is
// loaded and validated once; later calls filter the cached set.
type FileProvider struct {
	path string

	once   sync.Once
	cached []question.Question
	err    error
}

var _ Provider = (*FileProvider)(nil)

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Questions(ctx context.Context, examType string) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.once.Do(func() {
		p.cached, p.err = LoadFile(p.path)
	})
	if p.err != nil {
		return nil, p.err
	}
	if examType == "" {
		return append([]question.Question(nil), p.cached...), nil
	}
	return question.FilterByExam(p.cached, examType), nil
}

// LoadFile decodes and validates a corpus file.
func LoadFile(path string) ([]question.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	var qs []question.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("failed to decode corpus %s: %w", path, err)
	}
	if err := validateAll(qs); err != nil {
		return nil, fmt.Errorf("invalid corpus %s: %w", path, err)
	}
	return qs, nil
}
