package spectral

import "github.com/jsheehan/pass/internal/pass"

// FrequencyBins aggregates array.Values over [lower, upper) in groups of
// stride bins, writing the sum of squares of each group densely from index
// 0. Note the squaring is applied to values that are already a power
// spectrum, producing a quartic quantity -- this is the documented,
// intentional contract downstream code depends on. Fails with NoMemory
// rather than indexing past array's capacity if upper exceeds it.
func FrequencyBins(array *pass.SampleArray, lower, upper, stride int) error {
	if err := array.RequireCapacity("spectral.frequency_bins", upper); err != nil {
		return err
	}
	j := 0
	for i := lower; i < upper; i += stride {
		var sum float64
		for k := i; k < i+stride; k++ {
			sum += array.Values[k] * array.Values[k]
		}
		array.Values[j] = sum
		j++
	}
	array.Count = j
	for i := array.Count; i < array.Total(); i++ {
		array.Values[i] = 0
	}
	return nil
}
