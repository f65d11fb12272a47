package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pyqforge/backend/internal/corpus"
	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/domain/trend"
	"github.com/pyqforge/backend/internal/store"
	"github.com/pyqforge/backend/internal/telemetry"
	"github.com/pyqforge/backend/internal/worker"
)

// ExamService generates mock tests, runs attempts and scores them.
// It owns the auto-submit timers so the store stays a pure persistence layer.
type ExamService struct {
	store  store.Store
	corpus corpus.Provider
	clock  Clock
	logger *slog.Logger
	tracer trace.Tracer

	partialCredit bool
	sweepWorkers  int
	newRand       func() *rand.Rand

	mu     sync.Mutex
	timers map[string]func() bool // attemptID → stop
}

type Option func(*ExamService)

func WithClock(c Clock) Option {
	return func(s *ExamService) { s.clock = c }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *ExamService) { s.tracer = t }
}

// WithPartialCredit sets the default for tests whose exam config does not
// decide it.
func WithPartialCredit(on bool) Option {
	return func(s *ExamService) { s.partialCredit = on }
}

func WithSweepWorkers(n int) Option {
	return func(s *ExamService) { s.sweepWorkers = n }
}

// WithSeed makes question selection reproducible.
func WithSeed(seed uint64) Option {
	return func(s *ExamService) {
		s.newRand = func() *rand.Rand { return rand.New(rand.NewPCG(seed, seed)) }
	}
}

// NewExamService creates an ExamService. provider may be nil, in which case
// the store's own question table is the corpus.
func NewExamService(st store.Store, provider corpus.Provider, logger *slog.Logger, opts ...Option) *ExamService {
	s := &ExamService{
		store:        st,
		corpus:       provider,
		clock:        systemClock{},
		logger:       logger,
		tracer:       telemetry.Tracer(),
		sweepWorkers: 4,
		newRand:      func() *rand.Rand { return nil },
		timers:       make(map[string]func() bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.corpus == nil {
		s.corpus = storeCorpus{st}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

type storeCorpus struct{ st store.Store }

func (c storeCorpus) Questions(ctx context.Context, examType string) ([]question.Question, error) {
	return c.st.ListQuestions(ctx, examType)
}

// GenerateRequest describes one generation call. Zero values pick the
// exam's preset.
type GenerateRequest struct {
	ExamType      string
	Difficulty    question.Difficulty
	Name          string
	QuestionCount int
	PartialCredit *bool
}

// Result is the outcome of a submission.
type Result struct {
	Attempt  *attempt.Attempt
	Analysis *diagnostics.Analysis
	Results  []attempt.QuestionResult
}

// ============================================================================
// Generation
// ============================================================================

func (s *ExamService) GenerateTest(ctx context.Context, examType string, difficulty question.Difficulty) (*mocktest.MockTest, error) {
	return s.GenerateTestWithOptions(ctx, GenerateRequest{ExamType: examType, Difficulty: difficulty})
}

// GenerateTestWithOptions assembles and persists a trend-weighted mock test.
// It fails with ErrNoQuestionsAvailable when the filtered corpus cannot fill
// the requested size; tests are never silently truncated.
func (s *ExamService) GenerateTestWithOptions(ctx context.Context, req GenerateRequest) (_ *mocktest.MockTest, err error) {
	ctx, span := telemetry.StartSpan(ctx, s.tracer, "exam.generate_test",
		attribute.String("exam.type", req.ExamType),
		attribute.String("exam.difficulty", string(req.Difficulty)),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if req.ExamType == "" {
		return nil, fmt.Errorf("%w: exam type is required", ErrInvalidInput)
	}
	if req.Difficulty != "" && req.Difficulty != question.DifficultyMixed && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidInput, req.Difficulty)
	}
	if req.QuestionCount < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, mocktest.ErrInvalidCount)
	}

	qs, err := s.corpus.Questions(ctx, req.ExamType)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: corpus for %s is empty", ErrNoQuestionsAvailable, req.ExamType)
	}

	partial := s.partialCredit
	if req.PartialCredit != nil {
		partial = *req.PartialCredit
	}

	gen := mocktest.NewGenerator(mocktest.NewSelector(s.newRand()))
	t, err := gen.Generate(qs, mocktest.ConfigFor(req.ExamType), mocktest.GenerateOptions{
		Name:          req.Name,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
		PartialCredit: partial,
		Now:           s.clock.Now(),
	})
	if errors.Is(err, mocktest.ErrInsufficientSupply) {
		return nil, fmt.Errorf("%w: %w", ErrNoQuestionsAvailable, err)
	}
	if errors.Is(err, mocktest.ErrInvalidCount) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveMockTest(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save mock test: %w", err)
	}

	span.SetAttributes(
		attribute.String("test.id", t.ID),
		attribute.Int("test.questions", t.TotalQuestions),
	)
	s.logger.Info("mock test generated",
		"test_id", t.ID,
		"exam_type", t.ExamType,
		"difficulty", string(t.Difficulty),
		"questions", t.TotalQuestions,
		"corpus_size", len(qs),
	)
	return t, nil
}

func (s *ExamService) GetMockTest(ctx context.Context, testID string) (*mocktest.MockTest, error) {
	t, err := s.store.GetMockTest(ctx, testID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrTestNotFound
	}
	return t, err
}

// Trends returns the optimized chapter distribution for an exam, ranked.
// An empty subject covers every subject. An empty corpus yields an empty list.
func (s *ExamService) Trends(ctx context.Context, examType, subject string) ([]trend.ChapterStat, error) {
	qs, err := s.corpus.Questions(ctx, examType)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	if subject != "" {
		qs = question.FilterBySubject(qs, subject)
	}
	stats := trend.Optimize(trend.Analyze(qs, s.clock.Now().Year()))
	trend.SortByOptimized(stats)
	return stats, nil
}

// ImportQuestions validates and upserts questions into the store.
func (s *ExamService) ImportQuestions(ctx context.Context, qs []question.Question) (int, error) {
	for i := range qs {
		if err := qs[i].Validate(); err != nil {
			return 0, fmt.Errorf("%w: question %d: %w", ErrInvalidInput, i, err)
		}
	}
	if err := s.store.SaveQuestions(ctx, qs); err != nil {
		return 0, err
	}
	s.logger.Info("questions imported", "count", len(qs))
	return len(qs), nil
}

func (s *ExamService) CountQuestions(ctx context.Context, examType string) (int, error) {
	return s.store.CountQuestions(ctx, examType)
}

// ============================================================================
// Attempts
// ============================================================================

// StartAttempt opens an attempt on a persisted test and arms its
// auto-submit timer.
func (s *ExamService) StartAttempt(ctx context.Context, testID string) (*attempt.Attempt, error) {
	t, err := s.GetMockTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	a := attempt.New(t.ID, s.clock.Now())
	if err := s.store.SaveAttempt(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}
	s.schedule(a, t.TimeLimit())

	s.logger.Info("attempt started", "attempt_id", a.ID, "test_id", t.ID)
	return a, nil
}

func (s *ExamService) GetAttempt(ctx context.Context, attemptID string) (*attempt.Attempt, error) {
	a, err := s.store.GetAttempt(ctx, attemptID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAttemptNotFound
	}
	return a, err
}

// SaveResponses stores draft answers. They are what auto-submission scores.
func (s *ExamService) SaveResponses(ctx context.Context, attemptID string, rs []attempt.Response) error {
	err := s.store.SaveResponses(ctx, attemptID, rs)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAttemptNotFound
	}
	return err
}

func (s *ExamService) GetAnalysis(ctx context.Context, attemptID string) (*diagnostics.Analysis, error) {
	an, err := s.store.GetAnalysis(ctx, attemptID)
	if errors.Is(err, store.ErrNotFound) {
		if _, aerr := s.GetAttempt(ctx, attemptID); aerr != nil {
			return nil, aerr
		}
		return nil, ErrAnalysisNotFound
	}
	return an, err
}

// SubmitAttempt scores responses and finalizes the attempt as completed.
// It fails with ErrAttemptNotFound for an unknown id and with
// attempt.ErrAlreadyFinalized if the attempt is no longer in progress; in
// both cases nothing is changed.
func (s *ExamService) SubmitAttempt(ctx context.Context, attemptID string, rs []attempt.Response) (*Result, error) {
	return s.finalize(ctx, attemptID, rs, attempt.StatusCompleted)
}

// AutoSubmit finalizes an attempt from its saved draft responses.
func (s *ExamService) AutoSubmit(ctx context.Context, attemptID string) (*Result, error) {
	rs, err := s.store.GetResponses(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft responses: %w", err)
	}
	return s.finalize(ctx, attemptID, rs, attempt.StatusAutoSubmitted)
}

func (s *ExamService) finalize(ctx context.Context, attemptID string, rs []attempt.Response, status attempt.Status) (_ *Result, err error) {
	ctx, span := telemetry.StartSpan(ctx, s.tracer, "exam.submit_attempt",
		attribute.String("attempt.id", attemptID),
		attribute.String("attempt.status", string(status)),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	a, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if a.Status.Final() {
		return nil, attempt.ErrAlreadyFinalized
	}

	t, err := s.store.GetMockTest(ctx, a.TestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load test %s: %w", a.TestID, err)
	}

	now := s.clock.Now()
	policy := attempt.Policy{
		PartialCredit:         t.Marking.PartialCredit,
		PartialCreditSubjects: t.PartialCreditSubjects(),
	}
	sheet := attempt.NewScorer(policy).Score(t.Questions, rs)
	if len(sheet.Dropped) > 0 {
		s.logger.Warn("responses reference questions outside the test",
			"attempt_id", a.ID,
			"test_id", t.ID,
			"question_ids", sheet.Dropped,
		)
	}

	if err := a.Finalize(status, now, sheet.ObtainedMarks, t.TimeLimit()); err != nil {
		return nil, err
	}

	an := diagnostics.Diagnose(sheet)
	an.AttemptID = a.ID
	an.TestID = t.ID
	an.CreatedAt = now

	if err := s.store.FinalizeAttempt(ctx, a, rs, &an); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	s.cancelTimer(a.ID)

	span.SetAttributes(
		attribute.Float64("attempt.marks", a.ObtainedMarks),
		attribute.Float64("attempt.accuracy", an.Accuracy),
	)
	s.logger.Info("attempt finalized",
		"attempt_id", a.ID,
		"status", string(a.Status),
		"marks", a.ObtainedMarks,
		"accuracy", an.Accuracy,
	)
	return &Result{Attempt: a, Analysis: &an, Results: sheet.Results}, nil
}

// ============================================================================
// Deadlines
// ============================================================================

// schedule arms the auto-submit timer for an in-progress attempt. Untimed
// tests get no timer.
func (s *ExamService) schedule(a *attempt.Attempt, limit time.Duration) {
	deadline, ok := a.Deadline(limit)
	if !ok {
		return
	}
	wait := deadline.Sub(s.clock.Now())
	if wait < 0 {
		wait = 0
	}

	attemptID := a.ID
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, armed := s.timers[attemptID]; armed {
		return
	}
	s.timers[attemptID] = s.clock.AfterFunc(wait, func() {
		s.onDeadline(attemptID)
	})
}

// onDeadline runs on the timer goroutine. It uses context.Background
// because it is not tied to any request.
func (s *ExamService) onDeadline(attemptID string) {
	s.mu.Lock()
	delete(s.timers, attemptID)
	s.mu.Unlock()

	if _, err := s.AutoSubmit(context.Background(), attemptID); err != nil {
		if errors.Is(err, attempt.ErrAlreadyFinalized) {
			return
		}
		s.logger.Error("auto-submit failed", "attempt_id", attemptID, "error", err)
	}
}

func (s *ExamService) cancelTimer(attemptID string) {
	s.mu.Lock()
	stop, ok := s.timers[attemptID]
	delete(s.timers, attemptID)
	s.mu.Unlock()
	if ok {
		stop()
	}
}

// PendingTimers reports how many attempts have an armed deadline.
func (s *ExamService) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// SweepExpired auto-submits every in-progress attempt past its deadline and
// re-arms timers for the rest, which covers attempts started before a
// restart. It returns how many attempts it finalized.
func (s *ExamService) SweepExpired(ctx context.Context) (_ int, err error) {
	ctx, span := telemetry.StartSpan(ctx, s.tracer, "exam.sweep_expired")
	defer func() {
		span.SetError(err)
		span.End()
	}()

	open, err := s.store.ListAttemptsByStatus(ctx, attempt.StatusInProgress)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	limits := make(map[string]time.Duration)
	var expired []string
	for _, a := range open {
		limit, ok := limits[a.TestID]
		if !ok {
			t, err := s.store.GetMockTest(ctx, a.TestID)
			if err != nil {
				s.logger.Error("sweep: failed to load test", "test_id", a.TestID, "error", err)
				continue
			}
			limit = t.TimeLimit()
			limits[a.TestID] = limit
		}
		if a.IsExpired(now, limit) {
			expired = append(expired, a.ID)
			continue
		}
		s.schedule(a, limit)
	}

	outcomes := worker.Map(expired, s.sweepWorkers, func(attemptID string) error {
		s.cancelTimer(attemptID)
		_, err := s.AutoSubmit(ctx, attemptID)
		return err
	})

	finalized := 0
	for attemptID, err := range outcomes {
		switch {
		case err == nil:
			finalized++
		case errors.Is(err, attempt.ErrAlreadyFinalized):
		default:
			s.logger.Error("sweep: auto-submit failed", "attempt_id", attemptID, "error", err)
		}
	}

	span.SetAttributes(attribute.Int("sweep.finalized", finalized))
	if finalized > 0 {
		s.logger.Info("expired attempts auto-submitted", "count", finalized)
	}
	return finalized, nil
}

// Close stops every pending timer. Attempts left open are picked up by the
// next sweep.
func (s *ExamService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stop := range s.timers {
		stop()
		delete(s.timers, id)
	}
}
