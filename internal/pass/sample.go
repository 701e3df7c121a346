package pass

import "github.com/jsheehan/pass/internal/xerrors"

// SampleArray is a bounded vector of float64 samples carrying the
// sequence id of the frame it was derived from. Invariant: Count <= len(Values);
// elements beyond Count are zeroed by every operation that shrinks the array.
type SampleArray struct {
	SequenceID uint32
	Count      int
	Values     []float64
}

// NewSampleArray allocates a SampleArray with the given total capacity.
func NewSampleArray(total int) *SampleArray {
	return &SampleArray{Values: make([]float64, total)}
}

// Total returns the array's maximum capacity.
func (a *SampleArray) Total() int { return len(a.Values) }

// zeroTail clears Values[Count:] so the zero-tail invariant holds after any
// operation that changes Count.
func (a *SampleArray) zeroTail() {
	clear(a.Values[a.Count:])
}

// RequireCapacity returns a NoMemory error if the array cannot hold n values.
func (a *SampleArray) RequireCapacity(op string, n int) error {
	if len(a.Values) < n {
		return xerrors.NewNoMemory(op, nil)
	}
	return nil
}
