package spectral

import (
	"math"
	"testing"

	"github.com/jsheehan/pass/internal/pass"
)

func TestDecibelsConversion(t *testing.T) {
	t.Parallel()

	array := pass.NewSampleArray(3)
	array.Values[0] = 1.0
	array.Values[1] = 10.0
	array.Values[2] = 100.0
	array.Count = 3

	Decibels(array, 1.0, 0.0)

	want := []float64{0, 10, 20}
	for i, w := range want {
		if math.Abs(array.Values[i]-w) > 1e-9 {
			t.Fatalf("index %d: want %v got %v", i, w, array.Values[i])
		}
	}
}

func TestDecibelsAppliesCorrection(t *testing.T) {
	t.Parallel()

	array := pass.NewSampleArray(1)
	array.Values[0] = 1.0
	array.Count = 1

	Decibels(array, 1.0, 5.0)

	if math.Abs(array.Values[0]-5.0) > 1e-9 {
		t.Fatalf("want 5.0, got %v", array.Values[0])
	}
}

func TestDecibelsNonPositiveProducesIEEEResult(t *testing.T) {
	t.Parallel()

	array := pass.NewSampleArray(2)
	array.Values[0] = 0.0
	array.Values[1] = -1.0
	array.Count = 2

	Decibels(array, 1.0, 0.0)

	if !math.IsInf(array.Values[0], -1) {
		t.Fatalf("expected -Inf for zero input, got %v", array.Values[0])
	}
	if !math.IsNaN(array.Values[1]) {
		t.Fatalf("expected NaN for negative input, got %v", array.Values[1])
	}
}
