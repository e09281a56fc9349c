// Package transition implements the input-conditioned transition
// distribution layer (spec.md §4.5): for each valid input, a full output
// distribution, with operations to evaluate, sample, and fit per-input
// slices.
package transition

import (
	"fmt"

	"github.com/kshedden/mealyhmm/ioerr"
)

// Triple is one weighted observation fed to Fit/FitUnnormalized: an
// input, the output observed under that input, and its weight.
type Triple[I any, O any] struct {
	Input  I
	Output O
	Weight float64
}

// Transition is the joint distribution over (I,O) derived from an
// input-conditioned family of output distributions. pdf((x,y)) = Pdf(x,y)
// (spec.md §4.5); sampling a pair without a given input is policy-defined
// and not part of this interface -- see spec.md §9 "Open questions".
type Transition[I any, O any] interface {
	// Pdf returns the probability of observing y given input x.
	// Returns an error wrapping ioerr.ErrOutOfDomain if x is outside
	// the declared input range.
	Pdf(x I, y O) (float64, error)

	// Sample draws an output conditioned on x.
	Sample(x I, src Rander) O

	// Fit partitions weighted by structural equality of Input against
	// each sub-distribution's input and fits each slice independently.
	// weighted's weights are assumed to sum to one overall.
	Fit(weighted []Triple[I, O], eta float64) error

	// FitUnnormalized is like Fit but does not assume weighted's
	// weights sum to one; each partitioned slice is renormalized
	// locally by the underlying distribution's own FitUnnormalized.
	FitUnnormalized(weighted []Triple[I, O], eta float64) error
}

// Rander is the minimal sampling capability a Transition needs; it is
// satisfied by rng.Source so callers never need to import this package
// just to sample.
type Rander interface {
	NextUnit() float64
	NextBelow(n int) int
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("transition: "+format+": %w", append(args, ioerr.ErrInvalidInput)...)
}

func outOfDomain(format string, args ...any) error {
	return fmt.Errorf("transition: "+format+": %w", append(args, ioerr.ErrOutOfDomain)...)
}
