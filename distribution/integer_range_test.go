package distribution

import "testing"

func closeTo(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= 1e-6
}

func TestIntegerRangeUniform(t *testing.T) {
	d, err := NewIntegerRangeUniform(1, 5)
	if err != nil {
		t.Fatalf("NewIntegerRangeUniform: %v", err)
	}
	if d.Lower() != 1 || d.Upper() != 5 {
		t.Fatalf("lower/upper = %d/%d, want 1/5", d.Lower(), d.Upper())
	}
	for k := 1; k <= 5; k++ {
		p, err := d.Pdf(k)
		if err != nil {
			t.Fatalf("Pdf(%d): %v", k, err)
		}
		if !closeTo(p, 0.2) {
			t.Errorf("Pdf(%d) = %v, want 0.2", k, p)
		}
	}

	d2, err := NewIntegerRangeUniform(1, 8)
	if err != nil {
		t.Fatalf("NewIntegerRangeUniform: %v", err)
	}
	for k := 1; k <= 8; k++ {
		p, err := d2.Pdf(k)
		if err != nil {
			t.Fatalf("Pdf(%d): %v", k, err)
		}
		if !closeTo(p, 0.125) {
			t.Errorf("Pdf(%d) = %v, want 0.125", k, p)
		}
	}
}

func TestIntegerRangePointMassFit(t *testing.T) {
	d, err := NewIntegerRangeUniform(1, 5)
	if err != nil {
		t.Fatalf("NewIntegerRangeUniform: %v", err)
	}

	if err := d.Fit([]Weighted[int]{{Value: 3, Weight: 1.0}}, 1.0); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	want := map[int]float64{1: 0, 2: 0, 3: 1, 4: 0, 5: 0}
	for k, w := range want {
		p, err := d.Pdf(k)
		if err != nil {
			t.Fatalf("Pdf(%d): %v", k, err)
		}
		if !closeTo(p, w) {
			t.Errorf("after point-mass fit, Pdf(%d) = %v, want %v", k, p, w)
		}
	}

	if err := d.Fit([]Weighted[int]{{Value: 2, Weight: 1.0}}, 0.25); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	want = map[int]float64{1: 0, 2: 0.25, 3: 0.75, 4: 0, 5: 0}
	for k, w := range want {
		p, err := d.Pdf(k)
		if err != nil {
			t.Fatalf("Pdf(%d): %v", k, err)
		}
		if !closeTo(p, w) {
			t.Errorf("after blended fit, Pdf(%d) = %v, want %v", k, p, w)
		}
	}
}

func TestIntegerRangeShiftInvariance(t *testing.T) {
	a, err := NewIntegerRange(1, []float64{0.1, 0.2, 0.3, 0.4})
	if err != nil {
		t.Fatalf("NewIntegerRange: %v", err)
	}
	b, err := NewIntegerRange(100, []float64{0.1, 0.2, 0.3, 0.4})
	if err != nil {
		t.Fatalf("NewIntegerRange: %v", err)
	}
	for k := 0; k < 4; k++ {
		pa, err := a.Pdf(1 + k)
		if err != nil {
			t.Fatalf("Pdf: %v", err)
		}
		pb, err := b.Pdf(100 + k)
		if err != nil {
			t.Fatalf("Pdf: %v", err)
		}
		if !closeTo(pa, pb) {
			t.Errorf("shifted pdf mismatch at index %d: %v vs %v", k, pa, pb)
		}
	}
}

func TestFiniteDistributionOutOfDomain(t *testing.T) {
	d, err := NewUniformFinite(3)
	if err != nil {
		t.Fatalf("NewUniformFinite: %v", err)
	}
	if _, err := d.Pdf(-1); err == nil {
		t.Errorf("Pdf(-1) should fail")
	}
	if _, err := d.Pdf(3); err == nil {
		t.Errorf("Pdf(3) should fail")
	}
}

func TestFiniteDistributionResetIdempotent(t *testing.T) {
	d, err := NewUniformFinite(4)
	if err != nil {
		t.Fatalf("NewUniformFinite: %v", err)
	}
	if err := d.Fit([]Weighted[int]{{Value: 1, Weight: 1}}, 1); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	d.Reset()
	first := append([]float64(nil), d.cum...)
	d.Reset()
	for i := range first {
		if !closeTo(first[i], d.cum[i]) {
			t.Errorf("Reset is not idempotent at %d: %v vs %v", i, first[i], d.cum[i])
		}
	}
}

func TestFiniteDistributionEtaZeroNoOp(t *testing.T) {
	d, err := NewFinite([]float64{0.25, 0.25, 0.5})
	if err != nil {
		t.Fatalf("NewFinite: %v", err)
	}
	before := append([]float64(nil), d.cum...)
	if err := d.Fit([]Weighted[int]{{Value: 2, Weight: 1}}, 0); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for i := range before {
		if !closeTo(before[i], d.cum[i]) {
			t.Errorf("eta=0 fit changed cum[%d]: %v -> %v", i, before[i], d.cum[i])
		}
	}
}

func TestFiniteDistributionSumsToOne(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		d, err := NewUniformFinite(n)
		if err != nil {
			t.Fatalf("NewUniformFinite(%d): %v", n, err)
		}
		var total float64
		for k := 0; k < n; k++ {
			p, err := d.Pdf(k)
			if err != nil {
				t.Fatalf("Pdf: %v", err)
			}
			if p < 0 {
				t.Errorf("Pdf(%d) = %v is negative", k, p)
			}
			total += p
		}
		if !closeTo(total, 1) {
			t.Errorf("n=%d: total mass = %v, want 1", n, total)
		}
	}
}
