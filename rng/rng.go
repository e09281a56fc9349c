// Package rng supplies the uniform-sampling capability consumed by the
// distribution, transition, and iohmm packages. It owns the only global
// mutable state in the module: a lazily constructed process-default
// source, used whenever a caller omits an explicit one.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source produces the two primitive random draws every distribution in
// this module needs. Callers that want determinism or parallel-safe
// sampling supply their own Source; the only implicitly seeded Source is
// the process default returned by Default, which is seeded from the clock.
type Source interface {
	// NextUnit returns a uniform sample in [0,1).
	NextUnit() float64
	// NextBelow returns a uniform integer in [0,n). Panics if n <= 0.
	NextBelow(n int) int
}

// mathRandSource adapts *rand.Rand to Source.
type mathRandSource struct {
	r *rand.Rand
}

func (s *mathRandSource) NextUnit() float64 {
	return s.r.Float64()
}

func (s *mathRandSource) NextBelow(n int) int {
	return s.r.Intn(n)
}

// New wraps an existing *rand.Rand as a Source.
func New(r *rand.Rand) Source {
	return &mathRandSource{r: r}
}

var (
	defaultOnce   sync.Once
	defaultSource Source
)

// Default returns the process-wide default Source, constructing it on
// first use. Calling Default from several goroutines is safe (sync.Once
// guards construction), but drawing from the returned Source is not:
// it wraps a *rand.Rand created with rand.NewSource, which is not safe
// for concurrent use. Callers sampling from multiple goroutines should
// construct their own Source per goroutine.
func Default() Source {
	defaultOnce.Do(func() {
		defaultSource = New(rand.New(rand.NewSource(time.Now().UnixNano())))
	})
	return defaultSource
}

// OrDefault returns src if non-nil, otherwise Default().
func OrDefault(src Source) Source {
	if src == nil {
		return Default()
	}
	return src
}
