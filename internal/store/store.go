package store

import (
	"context"
	"errors"

	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/domain/question"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is the persistence layer used by the exam service.
type Store interface {
	SaveQuestions(ctx context.Context, qs []question.Question) error
	ListQuestions(ctx context.Context, examType string) ([]question.Question, error)
	CountQuestions(ctx context.Context, examType string) (int, error)

	SaveMockTest(ctx context.Context, t *mocktest.MockTest) error
	GetMockTest(ctx context.Context, id string) (*mocktest.MockTest, error)

	SaveAttempt(ctx context.Context, a *attempt.Attempt) error
	GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error)
	ListAttemptsByStatus(ctx context.Context, status attempt.Status) ([]*attempt.Attempt, error)

	SaveResponses(ctx context.Context, attemptID string, rs []attempt.Response) error
	GetResponses(ctx context.Context, attemptID string) ([]attempt.Response, error)

	// FinalizeAttempt records the final status, the responses that were
	// scored and the analysis snapshot in one transaction. It returns
	// attempt.ErrAlreadyFinalized if the attempt left in_progress first.
	FinalizeAttempt(ctx context.Context, a *attempt.Attempt, rs []attempt.Response, an *diagnostics.Analysis) error
	GetAnalysis(ctx context.Context, attemptID string) (*diagnostics.Analysis, error)

	Close() error
}
