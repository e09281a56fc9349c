// Package distribution implements the small algebra of probability
// distributions the IOHMM engine is built on: evaluation (Pdf), sampling,
// weighted-MLE fitting, and resetting. See spec.md §4.2-§4.4.
package distribution

import (
	"fmt"

	"github.com/kshedden/mealyhmm/ioerr"
	"github.com/kshedden/mealyhmm/rng"
)

// Tolerance is the published threshold for probability-sum validation
// (spec.md §6).
const Tolerance = 1e-6

// Weighted pairs an observed value with its weight in a fitting sample.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Distribution is the capability interface every concrete family in this
// package implements. T is the domain the distribution ranges over --
// int for FiniteDistribution and IntegerRangeDistribution, float64 for
// NormalDistribution.
type Distribution[T any] interface {
	// Pdf returns the probability (density or mass) of x. Returns an
	// error wrapping ioerr.ErrOutOfDomain if x lies outside the
	// distribution's declared support.
	Pdf(x T) (float64, error)

	// Sample draws a value distributed according to Pdf. A nil src
	// falls back to rng.Default().
	Sample(src rng.Source) T

	// Fit blends the distribution with the MLE of a weighted sample
	// whose weights are guaranteed to sum to one (within Tolerance).
	// An empty weighted sample leaves the distribution unchanged.
	// eta must lie in [0,1].
	Fit(weighted []Weighted[T], eta float64) error

	// FitUnnormalized is like Fit but the caller makes no guarantee
	// that the weights sum to one; implementations renormalize
	// internally before blending.
	FitUnnormalized(weighted []Weighted[T], eta float64) error

	// Reset returns the distribution to its canonical initial state.
	Reset()

	// Randomize applies a strong perturbation, used to escape
	// degenerate models. The only contract is that the distribution
	// remains valid afterward. A nil src falls back to rng.Default().
	// Randomize reports whether it had to fall back to a safe default
	// because a drawn mass underflowed to zero.
	Randomize(src rng.Source) (underflowed bool)
}

// sumWeights returns the total weight in a weighted sample.
func sumWeights[T any](weighted []Weighted[T]) float64 {
	var s float64
	for _, w := range weighted {
		s += w.Weight
	}
	return s
}

// renormalize returns a copy of weighted with every weight divided by the
// sample's total weight. Used by the scale-invariant FitUnnormalized
// mixin described in spec.md §9. Returns nil, false if the total weight
// is not positive (the caller should then leave its distribution
// unchanged, exactly as an empty sample would).
func renormalize[T any](weighted []Weighted[T]) ([]Weighted[T], bool) {
	if len(weighted) == 0 {
		return nil, false
	}
	total := sumWeights(weighted)
	if total <= 0 {
		return nil, false
	}
	out := make([]Weighted[T], len(weighted))
	for i, w := range weighted {
		out[i] = Weighted[T]{Value: w.Value, Weight: w.Weight / total}
	}
	return out, true
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("distribution: "+format+": %w", append(args, ioerr.ErrInvalidInput)...)
}

func outOfDomain(format string, args ...any) error {
	return fmt.Errorf("distribution: "+format+": %w", append(args, ioerr.ErrOutOfDomain)...)
}
