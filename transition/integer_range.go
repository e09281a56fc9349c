package transition

import "github.com/kshedden/mealyhmm/distribution"

// NewIntegerRangeTransitionDistribution builds a
// FiniteTransitionDistribution[int,O] over inputs [lower..upper], where
// each input's sub-distribution is produced by generator(index), index
// running over [0, upper-lower]. This is
// IntegerRangeTransitionDistribution<O> from spec.md §3/§6.
func NewIntegerRangeTransitionDistribution[O any](
	lower, upper int,
	generator func(index int) distribution.Distribution[O],
) (*FiniteTransitionDistribution[int, O], error) {
	if upper < lower {
		return nil, invalidInput("NewIntegerRangeTransitionDistribution: upper=%d < lower=%d", upper, lower)
	}
	n := upper - lower + 1
	sub := make([]distribution.Distribution[O], n)
	for k := 0; k < n; k++ {
		sub[k] = generator(k)
	}
	return NewFiniteTransitionDistribution[int, O](
		sub,
		func(x int) (int, bool) {
			k := x - lower
			if k < 0 || k >= n {
				return 0, false
			}
			return k, true
		},
		func(k int) int { return lower + k },
	)
}

// NewFiniteTransitionDistributionFromGenerator builds a
// FiniteTransitionDistribution[I,O] over an arbitrary comparable input
// type I with n inputs enumerated 0..n-1 by indexInput, using generator
// to build each sub-distribution. This is the "new(lower, upper,
// generator)" constructor family generalized to non-integer inputs
// (spec.md §6).
func NewFiniteTransitionDistributionFromGenerator[I comparable, O any](
	n int,
	indexInput func(int) I,
	generator func(index int) distribution.Distribution[O],
) (*FiniteTransitionDistribution[I, O], error) {
	if n < 1 {
		return nil, invalidInput("NewFiniteTransitionDistributionFromGenerator: n=%d must be >= 1", n)
	}
	sub := make([]distribution.Distribution[O], n)
	inputToIndex := make(map[I]int, n)
	for k := 0; k < n; k++ {
		sub[k] = generator(k)
		inputToIndex[indexInput(k)] = k
	}
	return NewFiniteTransitionDistribution[I, O](
		sub,
		func(x I) (int, bool) {
			k, ok := inputToIndex[x]
			return k, ok
		},
		indexInput,
	)
}
