package transition

import (
	"testing"

	"github.com/kshedden/mealyhmm/distribution"
)

func closeTo(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= 1e-6
}

func mustFinite(t *testing.T, probs []float64) distribution.Distribution[int] {
	d, err := distribution.NewFinite(probs)
	if err != nil {
		t.Fatalf("NewFinite: %v", err)
	}
	return d
}

func TestFiniteTransitionPdf(t *testing.T) {
	sub := []distribution.Distribution[int]{
		mustFinite(t, []float64{0.3, 0.7}),
		mustFinite(t, []float64{0.8, 0.2}),
	}
	td, err := NewFiniteTransitionDistribution[int, int](
		sub,
		func(x int) (int, bool) {
			if x < 1 || x > 2 {
				return 0, false
			}
			return x - 1, true
		},
		func(k int) int { return k + 1 },
	)
	if err != nil {
		t.Fatalf("NewFiniteTransitionDistribution: %v", err)
	}

	cases := []struct {
		x, y int
		want float64
	}{
		{1, 0, 0.3},
		{1, 1, 0.7},
		{2, 0, 0.8},
		{2, 1, 0.2},
	}
	for _, c := range cases {
		p, err := td.Pdf(c.x, c.y)
		if err != nil {
			t.Fatalf("Pdf(%d,%d): %v", c.x, c.y, err)
		}
		if !closeTo(p, c.want) {
			t.Errorf("Pdf(%d,%d) = %v, want %v", c.x, c.y, p, c.want)
		}
	}

	if _, err := td.Pdf(3, 0); err == nil {
		t.Errorf("Pdf with out-of-range input should fail")
	}
}

func TestFiniteTransitionFitPartitionsByInput(t *testing.T) {
	sub := []distribution.Distribution[int]{
		mustFinite(t, []float64{0.5, 0.5}),
		mustFinite(t, []float64{0.5, 0.5}),
	}
	td, err := NewFiniteTransitionDistribution[int, int](
		sub,
		func(x int) (int, bool) { return x, true },
		func(k int) int { return k },
	)
	if err != nil {
		t.Fatalf("NewFiniteTransitionDistribution: %v", err)
	}

	err = td.Fit([]Triple[int, int]{
		{Input: 0, Output: 1, Weight: 1.0},
		{Input: 1, Output: 0, Weight: 1.0},
	}, 1.0)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	p00, _ := td.Pdf(0, 0)
	p01, _ := td.Pdf(0, 1)
	p10, _ := td.Pdf(1, 0)
	p11, _ := td.Pdf(1, 1)
	if !closeTo(p00, 0) || !closeTo(p01, 1) {
		t.Errorf("sub-distribution 0 not fit correctly: pdf(0,0)=%v pdf(0,1)=%v", p00, p01)
	}
	if !closeTo(p10, 1) || !closeTo(p11, 0) {
		t.Errorf("sub-distribution 1 not fit correctly: pdf(1,0)=%v pdf(1,1)=%v", p10, p11)
	}
}

func TestFiniteTransitionFitRejectsOutOfRangeInput(t *testing.T) {
	sub := []distribution.Distribution[int]{mustFinite(t, []float64{1.0})}
	td, err := NewFiniteTransitionDistribution[int, int](
		sub,
		func(x int) (int, bool) {
			if x != 0 {
				return 0, false
			}
			return 0, true
		},
		func(k int) int { return 0 },
	)
	if err != nil {
		t.Fatalf("NewFiniteTransitionDistribution: %v", err)
	}
	err = td.Fit([]Triple[int, int]{{Input: 9, Output: 0, Weight: 1}}, 1)
	if err == nil {
		t.Errorf("Fit with out-of-range input should fail")
	}
}

func TestIntegerRangeTransitionDistribution(t *testing.T) {
	td, err := NewIntegerRangeTransitionDistribution[int](1, 2, func(index int) distribution.Distribution[int] {
		if index == 0 {
			return mustFinite(t, []float64{0.3, 0.7})
		}
		return mustFinite(t, []float64{0.8, 0.2})
	})
	if err != nil {
		t.Fatalf("NewIntegerRangeTransitionDistribution: %v", err)
	}
	p, err := td.Pdf(2, 0)
	if err != nil {
		t.Fatalf("Pdf: %v", err)
	}
	if !closeTo(p, 0.8) {
		t.Errorf("Pdf(2,0) = %v, want 0.8", p)
	}
}
