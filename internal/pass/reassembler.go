package pass

import "github.com/jsheehan/pass/internal/xerrors"

// Reassembler implements the scratch-buffer sliding window described in
// the acquisition context's framing contract: each Consume call appends
// one freshly read block to the scratch buffer, then scans for aligned
// (header, payload) pairs. A successful call emits at most one frame: the
// last complete one in scratch, or none when the next header has not yet
// arrived.
//
// Reassembler is not safe for concurrent use; it is driven exclusively by
// the single-threaded ingest loop, mirroring the scratch buffer's role as
// state belonging to one acquisition context.
type Reassembler struct {
	expectedPayload int // S*C*R*2 bytes
	expectedBlock   int // expectedPayload + HeaderSize

	scratch []byte // len == total capacity (2x expectedBlock)
	count   int

	Header     [HeaderSize]byte
	Payload    []byte
	SequenceID uint32
}

// NewReassembler constructs a Reassembler sized for the given payload
// length. The scratch buffer is allocated at twice the expected block size,
// per the "one in-flight partial frame can coexist with a fully arrived
// one" rationale.
func NewReassembler(expectedPayload int) *Reassembler {
	expectedBlock := expectedPayload + HeaderSize
	return &Reassembler{
		expectedPayload: expectedPayload,
		expectedBlock:   expectedBlock,
		scratch:         make([]byte, 2*expectedBlock),
		Payload:         make([]byte, expectedPayload),
	}
}

// Total returns the scratch buffer's capacity, exposed for invariant tests.
func (r *Reassembler) Total() int { return len(r.scratch) }

// Count returns the number of currently valid bytes at the front of scratch.
func (r *Reassembler) Count() int { return r.count }

// wipe zeroes scratch and resets count to 0.
func (r *Reassembler) wipe() {
	clear(r.scratch[:r.count])
	r.count = 0
}

// compact shifts scratch[from:count) down to offset 0 and zeroes the tail,
// preserving the invariant that [count, total) is always zero.
func (r *Reassembler) compact(from int) {
	remaining := r.count - from
	copy(r.scratch, r.scratch[from:r.count])
	clear(r.scratch[remaining:r.count])
	r.count = remaining
}

// Consume appends a freshly read block (exactly expectedBlock bytes) to the
// scratch buffer and attempts to extract one aligned frame. On success it
// returns nil with SequenceID read from Header; Header and Payload hold the
// newly extracted frame, or, when a header was found but its payload is
// still incomplete, are left as they were from the previous extraction. On
// a gap it wipes scratch and returns an xerrors.KindGapDetected error.
func (r *Reassembler) Consume(block []byte) error {
	if len(block) != r.expectedBlock {
		return xerrors.NewGeneric("reassembler.consume", nil)
	}

	if r.count+r.expectedBlock > len(r.scratch) {
		r.wipe()
		return xerrors.NewGapDetected("reassembler.consume", nil)
	}

	copy(r.scratch[r.count:], block)
	r.count += r.expectedBlock

	extracted := false

	for {
		if r.count < HeaderSize {
			if !extracted {
				return xerrors.NewGapDetected("reassembler.consume", nil)
			}
			break
		}

		h1 := findHeader(r.scratch, 0, r.count)
		if h1 == r.count {
			r.wipe()
			return xerrors.NewGapDetected("reassembler.consume", nil)
		}

		h1End := h1 + HeaderSize
		h2 := findHeader(r.scratch, h1End, r.count)
		received := h2 - h1End

		switch {
		case received == r.expectedPayload:
			copy(r.Header[:], r.scratch[h1:h1End])
			copy(r.Payload, r.scratch[h1End:h1End+r.expectedPayload])
			extracted = true
			r.compact(h2)
			continue
		case received > r.expectedPayload:
			r.wipe()
			return xerrors.NewGapDetected("reassembler.consume", nil)
		default:
			if h2 < r.count {
				r.wipe()
				return xerrors.NewGapDetected("reassembler.consume", nil)
			}
			r.compact(h1)
		}
		break
	}

	r.SequenceID = SequenceID(r.Header[:])
	return nil
}
