package worker

import (
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsAllJobs(t *testing.T) {
	p := NewPool[int](3, 10)
	for i := 0; i < 10; i++ {
		p.Submit(strconv.Itoa(i), func() int { return i * i })
	}
	p.Close()

	got := make(map[string]int)
	for r := range p.Results() {
		got[r.JobID] = r.Output
	}

	assert.Len(t, got, 10)
	assert.Equal(t, 81, got["9"])
}

func TestPool_CloseTwice(t *testing.T) {
	p := NewPool[int](1, 0)
	p.Close()
	p.Close()

	_, ok := <-p.Results()
	assert.False(t, ok)
}

func TestMap(t *testing.T) {
	var calls atomic.Int32
	out := Map([]string{"a", "b", "c"}, 2, func(id string) string {
		calls.Add(1)
		return id + id
	})

	assert.Equal(t, map[string]string{"a": "aa", "b": "bb", "c": "cc"}, out)
	assert.Equal(t, int32(3), calls.Load())
}

func TestMap_Empty(t *testing.T) {
	out := Map(nil, 4, func(id string) int { return 1 })
	assert.Empty(t, out)
}
