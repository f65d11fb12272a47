package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/pyqforge/backend/internal/domain/question"
)

// RemoteProvider fetches questions from an HTTP corpus service:
//
//	GET {baseURL}/questions?exam_type=JEE_MAIN
//
// returning a JSON array of questions. Transport errors and 5xx responses
// are retried with exponential backoff; 4xx responses fail immediately.
type RemoteProvider struct {
	baseURL  string
	client   *http.Client
	counter  *RequestCounter
	maxTries uint
	backoff  func() backoff.BackOff
}

var _ Provider = (*RemoteProvider)(nil)

// FetchError is returned when the corpus service could not be read, so the
// caller can tell an unreachable upstream from an invalid corpus.
type FetchError struct {
	Status  int
	Reason  string
	Wrapped error
}

func (e *FetchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("corpus fetch failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("corpus fetch failed: %s", e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Wrapped
}

type RemoteOption func(*RemoteProvider)

func WithHTTPClient(c *http.Client) RemoteOption {
	return func(p *RemoteProvider) { p.client = c }
}

func WithMaxTries(n uint) RemoteOption {
	return func(p *RemoteProvider) { p.maxTries = n }
}

// WithBackOff replaces the retry schedule. Tests use a zero backoff.
func WithBackOff(f func() backoff.BackOff) RemoteOption {
	return func(p *RemoteProvider) { p.backoff = f }
}

// NewRemoteProvider creates a provider for baseURL. counter bounds the total
// number of upstream requests, retries included.
func NewRemoteProvider(baseURL string, counter *RequestCounter, opts ...RemoteOption) *RemoteProvider {
	p := &RemoteProvider{
		baseURL:  baseURL,
		counter:  counter,
		maxTries: 3,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.counter == nil {
		p.counter = NewRequestCounter(0, 0)
	}
	return p
}

func (p *RemoteProvider) Questions(ctx context.Context, examType string) ([]question.Question, error) {
	attempt := 0
	qs, err := backoff.Retry(ctx, func() ([]question.Question, error) {
		attempt++
		if err := p.counter.Allow(); err != nil {
			return nil, backoff.Permanent(err)
		}
		qs, err := p.fetch(ctx, examType)
		if err != nil {
			slog.Warn("corpus fetch attempt failed",
				"attempt", attempt,
				"exam_type", examType,
				"error", err,
			)
		}
		return qs, err
	},
		backoff.WithBackOff(p.backoff()),
		backoff.WithMaxTries(p.maxTries),
	)
	if err != nil {
		return nil, err
	}

	if err := validateAll(qs); err != nil {
		return nil, &FetchError{Reason: "invalid corpus payload", Wrapped: err}
	}
	return qs, nil
}

// fetch performs one request. Errors that retrying cannot fix are wrapped
// with backoff.Permanent.
func (p *RemoteProvider) fetch(ctx context.Context, examType string) ([]question.Question, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{Reason: "invalid base url", Wrapped: err})
	}
	u = u.JoinPath("questions")
	if examType != "" {
		q := u.Query()
		q.Set("exam_type", examType)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{Reason: "failed to create request", Wrapped: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &FetchError{Status: resp.StatusCode, Reason: fmt.Sprintf("upstream returned status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(&FetchError{Status: resp.StatusCode, Reason: fmt.Sprintf("upstream returned status %d", resp.StatusCode)})
	}

	var qs []question.Question
	if err := json.NewDecoder(resp.Body).Decode(&qs); err != nil {
		return nil, backoff.Permanent(&FetchError{Reason: "failed to decode response", Wrapped: err})
	}
	return qs, nil
}
