package distribution

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kshedden/mealyhmm/rng"
)

func TestNormalRejectsNonPositiveSigma(t *testing.T) {
	if _, err := NewNormal(0, 0); err == nil {
		t.Errorf("NewNormal with sigma=0 should fail")
	}
	if _, err := NewNormal(0, -1); err == nil {
		t.Errorf("NewNormal with sigma=-1 should fail")
	}
}

func TestNormalPdfAtMean(t *testing.T) {
	d, err := NewNormal(0, 1)
	if err != nil {
		t.Fatalf("NewNormal: %v", err)
	}
	p, err := d.Pdf(0)
	if err != nil {
		t.Fatalf("Pdf: %v", err)
	}
	want := 1 / math.Sqrt(2*math.Pi)
	if !closeTo(p, want) {
		t.Errorf("Pdf(0) = %v, want %v", p, want)
	}
}

func TestNormalFitNoOpOnEmpty(t *testing.T) {
	d, err := NewNormal(3, 2)
	if err != nil {
		t.Fatalf("NewNormal: %v", err)
	}
	if err := d.Fit(nil, 1); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if d.Mu() != 3 || d.Sigma() != 2 {
		t.Errorf("empty fit changed parameters: mu=%v sigma=%v", d.Mu(), d.Sigma())
	}
}

func TestNormalFitPointMass(t *testing.T) {
	d, err := NewNormal(0, 1)
	if err != nil {
		t.Fatalf("NewNormal: %v", err)
	}
	if err := d.Fit([]Weighted[float64]{{Value: 5, Weight: 1}}, 1); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !closeTo(d.Mu(), 5) {
		t.Errorf("Mu = %v, want 5", d.Mu())
	}
}

func TestNormalResetIdempotent(t *testing.T) {
	d, err := NewNormal(9, 4)
	if err != nil {
		t.Fatalf("NewNormal: %v", err)
	}
	d.Reset()
	mu1, sigma1 := d.Mu(), d.Sigma()
	d.Reset()
	if mu1 != d.Mu() || sigma1 != d.Sigma() {
		t.Errorf("Reset is not idempotent")
	}
	if d.Mu() != 0 || d.Sigma() != 1 {
		t.Errorf("Reset should give N(0,1), got mu=%v sigma=%v", d.Mu(), d.Sigma())
	}
}

func TestNormalSampleIsFinite(t *testing.T) {
	d, err := NewNormal(2, 3)
	if err != nil {
		t.Fatalf("NewNormal: %v", err)
	}
	src := rng.New(rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		x := d.Sample(src)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("Sample produced %v", x)
		}
	}
}
