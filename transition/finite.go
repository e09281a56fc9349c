package transition

import (
	"github.com/kshedden/mealyhmm/distribution"
)

// FiniteTransitionDistribution stores one sub-distribution over O per
// input index, plus an index<->input bijection held as function values
// rather than virtual accessors (spec.md §9 "Index<->input mapping").
// It exclusively owns its sub-distributions.
type FiniteTransitionDistribution[I any, O any] struct {
	sub        []distribution.Distribution[O]
	inputIndex func(I) (int, bool) // InputMapper
	indexInput func(int) I         // IndexMapper
}

var _ Transition[int, int] = (*FiniteTransitionDistribution[int, int])(nil)

// NewFiniteTransitionDistribution builds a FiniteTransitionDistribution
// from an explicit slice of sub-distributions (one per input index) and
// the index<->input mapping. sub must be non-empty; its entries become
// owned by the returned value.
func NewFiniteTransitionDistribution[I any, O any](
	sub []distribution.Distribution[O],
	inputIndex func(I) (int, bool),
	indexInput func(int) I,
) (*FiniteTransitionDistribution[I, O], error) {
	if len(sub) < 1 {
		return nil, invalidInput("NewFiniteTransitionDistribution: need at least one sub-distribution")
	}
	return &FiniteTransitionDistribution[I, O]{
		sub:        sub,
		inputIndex: inputIndex,
		indexInput: indexInput,
	}, nil
}

// NumInputs returns the number of distinct inputs this distribution
// covers.
func (d *FiniteTransitionDistribution[I, O]) NumInputs() int {
	return len(d.sub)
}

// Sub returns the sub-distribution for the k'th input index, as mapped
// by the constructor's IndexMapper. Useful for inspection and for
// building a MealyIOHMM's per-state transition arrays generator-style.
func (d *FiniteTransitionDistribution[I, O]) Sub(k int) distribution.Distribution[O] {
	return d.sub[k]
}

// IndexToInput applies the constructor's IndexMapper.
func (d *FiniteTransitionDistribution[I, O]) IndexToInput(k int) I {
	return d.indexInput(k)
}

// RandomizeAll randomizes every sub-distribution in place. It implements
// the optional randomizable capability that MealyIOHMM.Randomize probes
// for via a type assertion (spec.md §4.6.5 lists randomize among the
// engine's permitted mutations, but TransitionDistribution itself has no
// Randomize in its interface since not every Transition implementation
// owns inspectable sub-distributions). It returns the number of
// sub-distributions that had to fall back to a safe default while
// randomizing, so a caller can roll the count into its own diagnostics.
func (d *FiniteTransitionDistribution[I, O]) RandomizeAll(src Rander) int {
	underflows := 0
	for _, s := range d.sub {
		if s.Randomize(src) {
			underflows++
		}
	}
	return underflows
}

// Pdf implements Transition[I,O].
func (d *FiniteTransitionDistribution[I, O]) Pdf(x I, y O) (float64, error) {
	k, ok := d.inputIndex(x)
	if !ok || k < 0 || k >= len(d.sub) {
		return 0, outOfDomain("Pdf: input %v is out of range", x)
	}
	return d.sub[k].Pdf(y)
}

// Sample implements Transition[I,O]. Panics if x is out of range, since
// unlike Pdf there is no error return on the Distribution.Sample
// contract to propagate into -- callers should validate x with Pdf or
// their own range check first if x may be untrusted.
func (d *FiniteTransitionDistribution[I, O]) Sample(x I, src Rander) O {
	k, ok := d.inputIndex(x)
	if !ok || k < 0 || k >= len(d.sub) {
		panic("transition: Sample: input out of range")
	}
	return d.sub[k].Sample(src)
}

// Fit implements Transition[I,O] per spec.md §4.5: each triple's input
// is mapped to a sub-distribution index k by the constructor's
// InputMapper, its (y,w) pair goes into bucket k, and each non-empty
// bucket is fit into sub-distribution k. A triple whose input the
// InputMapper does not map fails the whole call with an
// ioerr.ErrOutOfDomain error before any sub-distribution is fit.
func (d *FiniteTransitionDistribution[I, O]) Fit(weighted []Triple[I, O], eta float64) error {
	return d.fit(weighted, eta, false)
}

// FitUnnormalized implements Transition[I,O]: identical partitioning to
// Fit, but each slice is fit via the sub-distribution's own
// FitUnnormalized, since a partitioned slice's weights need not sum to
// one even if weighted's do overall (spec.md §4.5).
func (d *FiniteTransitionDistribution[I, O]) FitUnnormalized(weighted []Triple[I, O], eta float64) error {
	return d.fit(weighted, eta, true)
}

func (d *FiniteTransitionDistribution[I, O]) fit(weighted []Triple[I, O], eta float64, unnormalized bool) error {
	buckets := make([][]distribution.Weighted[O], len(d.sub))
	for _, t := range weighted {
		k, ok := d.inputIndex(t.Input)
		if !ok || k < 0 || k >= len(d.sub) {
			return outOfDomain("Fit: input %v is out of range", t.Input)
		}
		buckets[k] = append(buckets[k], distribution.Weighted[O]{Value: t.Output, Weight: t.Weight})
	}
	for k, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		var err error
		if unnormalized {
			err = d.sub[k].FitUnnormalized(bucket, eta)
		} else {
			err = d.sub[k].Fit(bucket, eta)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
