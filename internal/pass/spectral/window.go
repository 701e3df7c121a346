// Package spectral implements the windowed FFT, frequency-bin aggregation,
// octave-band summation, and decibel conversion pipeline. The forward
// transform is provided by gonum.org/v1/gonum/dsp/fourier, the real-to-complex
// FFT library present in the example pack.
package spectral

import "math"

// Window builds a Hann window of the given length, then divides every
// element by the sum of the squared raw elements, matching pass.c's
// hann() (buffer[i] /= s). The normalized window's sum of squares is
// therefore 1/s, not 1.
func Window(length int) []float64 {
	w := make([]float64, length)
	denom := float64(length - 1)
	for i := range w {
		x := (2.0 * math.Pi * float64(i)) / denom
		w[i] = 0.5 - 0.5*math.Cos(x)
	}
	var sumSquares float64
	for _, v := range w {
		sumSquares += v * v
	}
	for i := range w {
		w[i] /= sumSquares
	}
	return w
}
