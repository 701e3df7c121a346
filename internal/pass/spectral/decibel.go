package spectral

import (
	"math"

	"github.com/jsheehan/pass/internal/pass"
)

// Decibels converts array.Values in place to decibels:
// values[i] = 10*log10(values[i]/reference) + correction. Negative or zero
// inputs produce the standard IEEE result (+-Inf / NaN) without error;
// callers are responsible for ensuring positive power-spectrum inputs.
func Decibels(array *pass.SampleArray, reference, correction float64) {
	for i := 0; i < array.Count; i++ {
		array.Values[i] = 10.0*math.Log10(array.Values[i]/reference) + correction
	}
}
