package mocktest

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/domain/trend"
)

var (
	ErrInvalidCount       = errors.New("question count must be positive")
	ErrInsufficientSupply = errors.New("insufficient question supply")
)

// SupplyError reports how far the eligible corpus is from the requested size.
type SupplyError struct {
	Requested int
	Available int
}

func (e *SupplyError) Error() string {
	return fmt.Sprintf("insufficient question supply: requested %d, available %d", e.Requested, e.Available)
}

func (e *SupplyError) Unwrap() error {
	return ErrInsufficientSupply
}

// Selector draws questions according to an optimized chapter distribution.
// A Selector is not safe for concurrent use; create one per generation.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector using rng, or a freshly seeded source when
// rng is nil.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// Select returns exactly n questions from eligible, spread over the chapters
// of stats by their optimized percentage. Questions whose chapter is not in
// stats are never chosen. The result is ordered by chapter rank, shuffled
// within each chapter.
func (s *Selector) Select(eligible []question.Question, stats []trend.ChapterStat, n int) ([]question.Question, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	pools := make(map[trend.ChapterKey][]question.Question)
	for _, q := range eligible {
		key := trend.ChapterKey{Subject: q.Subject, Chapter: q.Chapter}
		pools[key] = append(pools[key], q)
	}

	ranked := make([]trend.ChapterStat, len(stats))
	copy(ranked, stats)
	trend.SortByOptimized(ranked)

	weights := make([]float64, len(ranked))
	caps := make([]int, len(ranked))
	available := 0
	for i, st := range ranked {
		weights[i] = st.OptimizedPercentage
		caps[i] = len(pools[st.ChapterKey])
		available += caps[i]
	}
	if available < n {
		return nil, &SupplyError{Requested: n, Available: available}
	}

	alloc, err := allocateWithSupply(weights, caps, n)
	if err != nil {
		return nil, err
	}

	selected := make([]question.Question, 0, n)
	for i, st := range ranked {
		if alloc[i] == 0 {
			continue
		}
		selected = append(selected, s.sample(pools[st.ChapterKey], alloc[i])...)
	}
	return selected, nil
}

// sample draws k questions without replacement, in random order.
func (s *Selector) sample(pool []question.Question, k int) []question.Question {
	shuffled := make([]question.Question, len(pool))
	copy(shuffled, pool)

	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:k]
}

// Shuffle reorders questions in place; used when a caller wants a global
// order instead of chapter-ranked blocks.
func (s *Selector) Shuffle(qs []question.Question) {
	s.rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}
