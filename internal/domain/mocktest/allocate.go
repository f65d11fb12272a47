package mocktest

import (
	"errors"
	"math"
	"sort"
)

var ErrNoWeights = errors.New("allocation needs at least one positive weight")

// Allocate apportions n items over weights with the largest-remainder
// method: every share gets floor(w/Σw × n), then the leftover items go one
// by one to the largest fractional remainders, ties to the lower index.
// The result always sums to exactly n.
func Allocate(weights []float64, n int) ([]int, error) {
	if n < 0 {
		return nil, ErrInvalidCount
	}
	out := make([]int, len(weights))
	if n == 0 {
		return out, nil
	}

	var sum float64
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum <= 0 {
		return nil, ErrNoWeights
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, 0, len(weights))
	allocated := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		exact := w / sum * float64(n)
		whole := math.Floor(exact)
		out[i] = int(whole)
		allocated += out[i]
		rems = append(rems, remainder{index: i, frac: exact - whole})
	}

	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for k := 0; allocated < n; k++ {
		out[rems[k%len(rems)].index]++
		allocated++
	}
	return out, nil
}

// allocateWithSupply allocates n over weights without exceeding caps.
// Chapters that cannot absorb their share are capped and the shortfall is
// re-apportioned over the chapters that still have spare supply, until
// everything is placed. Callers must ensure Σcaps >= n.
func allocateWithSupply(weights []float64, caps []int, n int) ([]int, error) {
	alloc := make([]int, len(weights))
	active := make([]int, 0, len(weights))
	for i, c := range caps {
		if c > 0 {
			active = append(active, i)
		}
	}

	remaining := n
	for remaining > 0 {
		if len(active) == 0 {
			return nil, ErrInsufficientSupply
		}

		w := make([]float64, len(active))
		var sum float64
		for k, i := range active {
			w[k] = weights[i]
			sum += max(0, w[k])
		}
		if sum <= 0 {
			// Only zero-weight chapters remain; spread by spare supply instead.
			for k, i := range active {
				w[k] = float64(caps[i] - alloc[i])
			}
		}

		share, err := Allocate(w, remaining)
		if err != nil {
			return nil, err
		}

		overflow := 0
		next := active[:0]
		for k, i := range active {
			alloc[i] += share[k]
			if alloc[i] >= caps[i] {
				overflow += alloc[i] - caps[i]
				alloc[i] = caps[i]
				continue
			}
			next = append(next, i)
		}
		active = next
		remaining = overflow
	}
	return alloc, nil
}
