package distribution

import (
	"math"
	"sort"

	"github.com/kshedden/mealyhmm/rng"
)

// FiniteDistribution is a discrete distribution over {0..n-1}. Its
// internal form is the cumulative probability of the first n-1
// categories; category n-1's mass is implied as 1 - cum[n-2]. See
// spec.md §4.3.
type FiniteDistribution struct {
	n   int
	cum []float64 // length n-1
}

var _ Distribution[int] = (*FiniteDistribution)(nil)

// NewUniformFinite returns a FiniteDistribution with n categories, each
// with equal mass. n must be >= 1.
func NewUniformFinite(n int) (*FiniteDistribution, error) {
	if n < 1 {
		return nil, invalidInput("NewUniformFinite: n=%d must be >= 1", n)
	}
	d := &FiniteDistribution{n: n}
	d.Reset()
	return d, nil
}

// NewFinite returns a FiniteDistribution with the given per-category
// probabilities. probs must be non-empty, every entry non-negative, and
// the entries must sum to one within Tolerance.
func NewFinite(probs []float64) (*FiniteDistribution, error) {
	n := len(probs)
	if n < 1 {
		return nil, invalidInput("NewFinite: probs is empty")
	}
	var total float64
	for _, p := range probs {
		if p < 0 {
			return nil, invalidInput("NewFinite: negative probability %v", p)
		}
		total += p
	}
	if diff := total - 1; diff > Tolerance || diff < -Tolerance {
		return nil, invalidInput("NewFinite: probabilities sum to %v, not 1", total)
	}
	cum := make([]float64, n-1)
	var running float64
	for i := 0; i < n-1; i++ {
		running += probs[i]
		cum[i] = running
	}
	return &FiniteDistribution{n: n, cum: cum}, nil
}

// N returns the number of categories.
func (d *FiniteDistribution) N() int {
	return d.n
}

func (d *FiniteDistribution) massBelow(k int) float64 {
	if k == 0 {
		return 0
	}
	return d.cum[k-1]
}

func (d *FiniteDistribution) massAt(k int) float64 {
	if k == d.n-1 {
		return 1 - d.massBelow(k)
	}
	return d.cum[k] - d.massBelow(k)
}

// Pdf implements Distribution[int].
func (d *FiniteDistribution) Pdf(k int) (float64, error) {
	if k < 0 || k >= d.n {
		return 0, outOfDomain("Pdf: category %d not in [0,%d)", k, d.n)
	}
	return d.massAt(k), nil
}

// Sample implements Distribution[int] using cumulative-probability
// sampling: draw u and binary-search for the first category whose
// cumulative probability exceeds u. O(log n) per draw.
func (d *FiniteDistribution) Sample(src rng.Source) int {
	if d.n == 1 {
		return 0
	}
	src = rng.OrDefault(src)
	u := src.NextUnit()
	k := sort.Search(len(d.cum), func(i int) bool { return u < d.cum[i] })
	return k
}

// Fit implements Distribution[int] per spec.md §4.3: accumulate weight
// per category, then blend the resulting cumulative sequence with eta.
func (d *FiniteDistribution) Fit(weighted []Weighted[int], eta float64) error {
	if len(weighted) == 0 {
		return nil
	}
	counts := make([]float64, d.n)
	var total float64
	for _, w := range weighted {
		if w.Value < 0 || w.Value >= d.n {
			return invalidInput("Fit: category %d not in [0,%d)", w.Value, d.n)
		}
		counts[w.Value] += w.Weight
		total += w.Weight
	}
	if total == 0 {
		return nil
	}
	newCum := make([]float64, d.n-1)
	var running float64
	for i := 0; i < d.n-1; i++ {
		running += counts[i] / total
		newCum[i] = running
	}
	for i := range d.cum {
		d.cum[i] = (1-eta)*d.cum[i] + eta*newCum[i]
	}
	return nil
}

// FitUnnormalized implements Distribution[int]: category counts are
// already renormalized by total weight within Fit, so this delegates
// directly (spec.md §4.3 "fit_unnormalized: same as fit").
func (d *FiniteDistribution) FitUnnormalized(weighted []Weighted[int], eta float64) error {
	return d.Fit(weighted, eta)
}

// Reset sets the distribution to uniform over its categories.
func (d *FiniteDistribution) Reset() {
	d.cum = make([]float64, d.n-1)
	for i := range d.cum {
		d.cum[i] = float64(i+1) / float64(d.n)
	}
}

// Randomize redraws a fresh uniform-simplex sample via exponential
// spacings (the standard Dirichlet(1,...,1) construction) and installs
// it as the new cumulative sequence. It reports true if any draw
// underflowed to zero and had to be floored to 1e-12.
func (d *FiniteDistribution) Randomize(src rng.Source) bool {
	src = rng.OrDefault(src)
	underflowed := false
	weights := make([]float64, d.n)
	var total float64
	for i := range weights {
		u := src.NextUnit()
		if u <= 0 {
			u = 1e-12
			underflowed = true
		}
		weights[i] = -math.Log(u)
		total += weights[i]
	}
	newCum := make([]float64, d.n-1)
	var running float64
	for i := 0; i < d.n-1; i++ {
		running += weights[i] / total
		newCum[i] = running
	}
	d.cum = newCum
	return underflowed
}
