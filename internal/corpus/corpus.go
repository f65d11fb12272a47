package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pyqforge/backend/internal/domain/question"
)

// Provider supplies the past-question corpus for an exam. An empty examType
// returns every question.
type Provider interface {
	Questions(ctx context.Context, examType string) ([]question.Question, error)
}

var ErrRateLimited = errors.New("corpus: request budget exhausted")

// RequestCounter is a per-window budget of upstream requests. A zero limit
// means unlimited; a zero window means the budget never refills. Each
// provider gets its own counter so tests can reset it between runs.
type RequestCounter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	used        int
	windowStart time.Time
	now         func() time.Time
}

func NewRequestCounter(limit int, window time.Duration) *RequestCounter {
	return &RequestCounter{limit: limit, window: window, now: time.Now}
}

// Allow consumes one request from the current window's budget.
func (c *RequestCounter) Allow() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll()
	if c.limit > 0 && c.used >= c.limit {
		return fmt.Errorf("%w: %d of %d used", ErrRateLimited, c.used, c.limit)
	}
	c.used++
	return nil
}

// roll starts a new window once the current one has elapsed.
func (c *RequestCounter) roll() {
	now := c.now()
	if c.windowStart.IsZero() {
		c.windowStart = now
		return
	}
	if c.window > 0 && now.Sub(c.windowStart) >= c.window {
		c.used = 0
		c.windowStart = now
	}
}

// Used reports requests consumed in the current window.
func (c *RequestCounter) Used() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll()
	return c.used
}

func (c *RequestCounter) Reset() {
	c.mu.Lock()
	c.used = 0
	c.windowStart = time.Time{}
	c.mu.Unlock()
}

// validateAll checks every question and rejects duplicate ids.
func validateAll(qs []question.Question) error {
	seen := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d (%s): %w", i, q.ID, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
