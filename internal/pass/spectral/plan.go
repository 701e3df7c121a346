package spectral

import (
	"github.com/jsheehan/pass/internal/pass"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan owns the buffers and transform descriptor for one sample-rate length
// forward real-to-complex FFT: an input buffer of length R, a Hann window
// of length R, and a complex result buffer of OutputRate entries (the
// length fourier.FFT's Coefficients produces for a real input of length R).
type Plan struct {
	SampleRate int
	OutputRate int // R/2 + 1

	input  []float64
	window []float64
	result []complex128
	fft    *fourier.FFT
}

// NewPlan constructs a Plan for the given sample rate (R), building the
// Hann window once.
func NewPlan(sampleRate int) *Plan {
	return &Plan{
		SampleRate: sampleRate,
		OutputRate: sampleRate/2 + 1,
		input:      make([]float64, sampleRate),
		window:     Window(sampleRate),
		fft:        fourier.NewFFT(sampleRate),
	}
}

// Execute applies the Hann window, runs the forward transform, and folds
// the result into a power spectrum in place: array.Values[0] is the DC bin
// squared; every subsequent bin up to OutputRate is 2*(re^2+im^2). array
// must have Count >= SampleRate; the caller is responsible for that
// precondition. Fails with NoMemory if the array's total capacity cannot
// hold OutputRate values.
func (p *Plan) Execute(array *pass.SampleArray) error {
	if err := array.RequireCapacity("spectral.execute", p.OutputRate); err != nil {
		return err
	}

	src := array.Values
	for i := 0; i < p.SampleRate; i++ {
		p.input[i] = src[i] * p.window[i]
	}

	p.result = p.fft.Coefficients(p.result, p.input)

	src[0] = real(p.result[0]) * real(p.result[0])
	for i := 1; i < p.OutputRate; i++ {
		re, im := real(p.result[i]), imag(p.result[i])
		src[i] = 2.0 * (re*re + im*im)
	}
	array.Count = p.OutputRate
	for i := p.OutputRate; i < array.Total(); i++ {
		src[i] = 0
	}
	return nil
}
