package distribution

import (
	"math/rand"
	"testing"

	"github.com/kshedden/mealyhmm/rng"
)

func TestFiniteDistributionSamplingLaw(t *testing.T) {
	probs := []float64{0.1, 0.2, 0.3, 0.4}
	d, err := NewFinite(probs)
	if err != nil {
		t.Fatalf("NewFinite: %v", err)
	}
	src := rng.New(rand.New(rand.NewSource(7)))

	const m = 200000
	counts := make([]int, len(probs))
	for i := 0; i < m; i++ {
		counts[d.Sample(src)]++
	}
	for k, p := range probs {
		freq := float64(counts[k]) / float64(m)
		if diff := freq - p; diff > 0.01 || diff < -0.01 {
			t.Errorf("category %d: empirical freq %v, want close to %v", k, freq, p)
		}
	}
}

func TestFiniteDistributionSingleCategory(t *testing.T) {
	d, err := NewUniformFinite(1)
	if err != nil {
		t.Fatalf("NewUniformFinite: %v", err)
	}
	src := rng.New(rand.New(rand.NewSource(1)))
	for i := 0; i < 10; i++ {
		if k := d.Sample(src); k != 0 {
			t.Errorf("Sample on n=1 returned %d, want 0", k)
		}
	}
}

func TestFiniteDistributionRandomizeStaysValid(t *testing.T) {
	d, err := NewUniformFinite(5)
	if err != nil {
		t.Fatalf("NewUniformFinite: %v", err)
	}
	src := rng.New(rand.New(rand.NewSource(3)))
	d.Randomize(src)
	var total float64
	for k := 0; k < 5; k++ {
		p, err := d.Pdf(k)
		if err != nil {
			t.Fatalf("Pdf: %v", err)
		}
		if p < 0 {
			t.Errorf("Pdf(%d) = %v is negative after Randomize", k, p)
		}
		total += p
	}
	if !closeTo(total, 1) {
		t.Errorf("total mass after Randomize = %v, want 1", total)
	}
}
