package pass

// Frame header parsing.
// Every acquisition block begins with a 42-byte header: an 8-byte magic
// prefix (two identical 32-bit words of 0xC0C0C0C0), 24 bytes of fields the
// core does not interpret, and a big-endian sequence id at bytes 28..31.
//
// Header candidates are probed as a stream of 32-bit words, each decoded
// from the bytes with encoding/binary rather than read through a pointer
// cast: offset-0 alignment of a candidate is never guaranteed, so word reads
// must tolerate any byte offset.

import "encoding/binary"

// HeaderSize is the fixed size, in bytes, of a frame header.
const HeaderSize = 42

// magicWord is the 32-bit value repeated at the start of every header.
const magicWord = 0xC0C0C0C0

// sequenceOffset is the byte offset of the big-endian sequence id within a header.
const sequenceOffset = 28

// IsHeaderAt reports whether a valid frame header begins at offset 0 of b.
// b must have at least HeaderSize bytes. The predicate requires the first
// two words to equal the magic and the next two words to differ from it,
// disambiguating the magic prefix from payload bytes that coincidentally
// match it.
func IsHeaderAt(b []byte) bool {
	if len(b) < HeaderSize {
		return false
	}
	w0 := binary.BigEndian.Uint32(b[0:4])
	w1 := binary.BigEndian.Uint32(b[4:8])
	w2 := binary.BigEndian.Uint32(b[8:12])
	w3 := binary.BigEndian.Uint32(b[12:16])
	return w0 == magicWord && w1 == magicWord && w2 != magicWord && w3 != magicWord
}

// SequenceID extracts the big-endian sequence id at bytes 28..31 of a header.
// b must have at least HeaderSize bytes.
func SequenceID(b []byte) uint32 {
	return binary.BigEndian.Uint32(b[sequenceOffset : sequenceOffset+4])
}

// findHeader scans b[start:end] for the first offset at which a valid
// header begins: a candidate at i requires i+HeaderSize <= end, so a
// header ending exactly at end is found. Returns end if no header is found.
func findHeader(b []byte, start, end int) int {
	for i := start; i+HeaderSize <= end; i++ {
		if IsHeaderAt(b[i:end]) {
			return i
		}
	}
	return end
}
