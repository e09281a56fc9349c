package distribution

import "github.com/kshedden/mealyhmm/rng"

// IntegerRangeDistribution is a FiniteDistribution bijected onto the
// integers [lower..upper] by index = value - lower. See spec.md §4.3.
type IntegerRangeDistribution struct {
	lower int
	inner *FiniteDistribution
}

var _ Distribution[int] = (*IntegerRangeDistribution)(nil)

// NewIntegerRangeUniform returns a uniform IntegerRangeDistribution over
// [lower, upper]. upper must be >= lower.
func NewIntegerRangeUniform(lower, upper int) (*IntegerRangeDistribution, error) {
	if upper < lower {
		return nil, invalidInput("NewIntegerRangeUniform: upper=%d < lower=%d", upper, lower)
	}
	inner, err := NewUniformFinite(upper - lower + 1)
	if err != nil {
		return nil, err
	}
	return &IntegerRangeDistribution{lower: lower, inner: inner}, nil
}

// NewIntegerRange returns an IntegerRangeDistribution over
// [lower, lower+len(probs)-1] with the given per-category probabilities.
func NewIntegerRange(lower int, probs []float64) (*IntegerRangeDistribution, error) {
	inner, err := NewFinite(probs)
	if err != nil {
		return nil, err
	}
	return &IntegerRangeDistribution{lower: lower, inner: inner}, nil
}

// Lower returns the smallest value in the distribution's support.
func (d *IntegerRangeDistribution) Lower() int {
	return d.lower
}

// Upper returns the largest value in the distribution's support.
func (d *IntegerRangeDistribution) Upper() int {
	return d.lower + d.inner.N() - 1
}

// Probabilities returns the per-category probabilities in ascending
// order of value, i.e. Probabilities()[i] == Pdf(Lower()+i).
func (d *IntegerRangeDistribution) Probabilities() []float64 {
	out := make([]float64, d.inner.N())
	for i := range out {
		out[i] = d.inner.massAt(i)
	}
	return out
}

// Pdf implements Distribution[int]. pdf values and iteration order are
// invariant under any shift of lower: the mapping to the inner
// FiniteDistribution is purely a subtraction, so shifting lower and
// shifting every queried/sampled value by the same amount leaves every
// Pdf result unchanged.
func (d *IntegerRangeDistribution) Pdf(x int) (float64, error) {
	p, err := d.inner.Pdf(x - d.lower)
	if err != nil {
		return 0, outOfDomain("Pdf: %d not in [%d,%d]", x, d.lower, d.Upper())
	}
	return p, nil
}

// Sample implements Distribution[int].
func (d *IntegerRangeDistribution) Sample(src rng.Source) int {
	return d.lower + d.inner.Sample(src)
}

// Fit implements Distribution[int], mapping each observed value through
// value-lower before delegating to the inner FiniteDistribution.
func (d *IntegerRangeDistribution) Fit(weighted []Weighted[int], eta float64) error {
	shifted := make([]Weighted[int], len(weighted))
	for i, w := range weighted {
		if w.Value < d.lower || w.Value > d.Upper() {
			return invalidInput("Fit: %d not in [%d,%d]", w.Value, d.lower, d.Upper())
		}
		shifted[i] = Weighted[int]{Value: w.Value - d.lower, Weight: w.Weight}
	}
	return d.inner.Fit(shifted, eta)
}

// FitUnnormalized implements Distribution[int].
func (d *IntegerRangeDistribution) FitUnnormalized(weighted []Weighted[int], eta float64) error {
	return d.Fit(weighted, eta)
}

// Reset implements Distribution[int].
func (d *IntegerRangeDistribution) Reset() {
	d.inner.Reset()
}

// Randomize implements Distribution[int].
func (d *IntegerRangeDistribution) Randomize(src rng.Source) bool {
	return d.inner.Randomize(src)
}
