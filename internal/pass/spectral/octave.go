package spectral

import "github.com/jsheehan/pass/internal/pass"

// OctaveBand is one entry of the fixed third-octave table: a contiguous
// range of power-spectrum bins with fractional end-weights.
type OctaveBand struct {
	Number int
	Lower  int
	Upper  int

	LowerWeight float64
	UpperWeight float64
}

// OctaveBandSmallest and OctaveBandLargest bound the valid band_number
// range of the table below.
const (
	OctaveBandSmallest = 10
	OctaveBandLargest  = 53
)

// OctaveBands is the fixed 44-entry third-octave table, bands 10..53,
// transcribed verbatim from the original implementation's constant table.
var OctaveBands = [...]OctaveBand{
	{10, 9, 11, 0.087491, 0.220185},
	{11, 11, 14, 0.779815, 0.125375},
	{12, 14, 18, 0.874625, 0.782794},
	{13, 18, 22, 0.217206, 0.387211},
	{14, 22, 28, 0.612789, 0.183829},
	{15, 28, 35, 0.816171, 0.481339},

	{16, 35, 45, 0.518661, 0.668359},
	{17, 45, 56, 0.331641, 0.234133},
	{18, 56, 71, 0.765867, 0.794578},
	{19, 71, 89, 0.205422, 0.125094},

	{20, 89, 112, 0.874906, 0.201845},
	{21, 112, 141, 0.798155, 0.253754},
	{22, 141, 178, 0.746246, 0.827941},
	{23, 178, 224, 0.172059, 0.872114},
	{24, 224, 282, 0.127886, 0.838293},

	{25, 282, 355, 0.161707, 0.813389},
	{26, 355, 447, 0.186611, 0.683592},
	{27, 447, 562, 0.316408, 0.341325},
	{28, 562, 708, 0.658675, 0.945784},

	{29, 708, 891, 0.054216, 0.250938},
	{30, 891, 1122, 0.749062, 0.018454},
	{31, 1122, 1413, 0.981546, 0.537545},
	{32, 1413, 1778, 0.462455, 0.279410},

	{33, 1778, 2239, 0.720590, 0.721139},
	{34, 2239, 2818, 0.278861, 0.382931},
	{35, 2818, 3548, 0.617069, 0.133892},
	{36, 3548, 4467, 0.866108, 0.835922},

	{37, 4467, 5623, 0.164078, 0.413252},
	{38, 5623, 7079, 0.586748, 0.457844},
	{39, 7079, 8913, 0.542156, 0.509381},
	{40, 8913, 11220, 0.490619, 0.184543},

	{41, 11220, 14125, 0.815457, 0.375446},
	{42, 14125, 17783, 0.624554, 0.794100},
	{43, 17783, 22387, 0.205900, 0.211386},
	{44, 22387, 28184, 0.788614, 0.829313},

	{45, 28184, 35481, 0.170687, 0.338923},
	{46, 35481, 44668, 0.661077, 0.359215},
	{47, 44668, 56234, 0.640785, 0.132519},
	{48, 56234, 70795, 0.867481, 0.578438},

	{49, 70795, 89125, 0.421562, 0.093813},
	{50, 89125, 112202, 0.906187, 0.845430},
	{51, 112202, 141254, 0.154570, 0.754462},
	{52, 141254, 177828, 0.245538, 0.941004},

	{53, 177828, 223872, 0.058996, 0.113857},
}

// AggregateOctaveBands aggregates array.Values into octave-band sums for
// bands in [lower, upper), clamped to [OctaveBandSmallest,
// OctaveBandLargest), writing results densely from index 0; band 53 is
// therefore never aggregated. Fails with NoMemory rather than indexing past
// array's capacity if the highest band in range reaches past it (band 52's
// Upper is 177828).
func AggregateOctaveBands(array *pass.SampleArray, lower, upper int) error {
	indexLower := 0
	if lower > OctaveBandSmallest {
		indexLower = lower - OctaveBandSmallest
	}
	indexUpper := OctaveBandLargest - OctaveBandSmallest
	if upper < OctaveBandLargest {
		indexUpper = upper - OctaveBandSmallest
	}

	if indexUpper > indexLower {
		if err := array.RequireCapacity("spectral.aggregate_octave_bands", OctaveBands[indexUpper-1].Upper+1); err != nil {
			return err
		}
	}

	i := 0
	for j := indexLower; j < indexUpper; j++ {
		band := OctaveBands[j]
		sum := band.LowerWeight * array.Values[band.Lower]
		for k := band.Lower + 1; k < band.Upper; k++ {
			sum += array.Values[k]
		}
		sum += band.UpperWeight * array.Values[band.Upper]
		array.Values[i] = sum
		i++
	}
	array.Count = i
	for j := array.Count; j < array.Total(); j++ {
		array.Values[j] = 0
	}
	return nil
}
