// Package bitfield extracts 2-bit fields from packed byte ranges as used for
// injury and condition codes in save states.
//
// The bytes are read most significant bit first: every byte is normalized by
// reversing its bit order before the bytes are concatenated into a single
// sequence, index 0 of the sequence is then the most significant bit of the
// first byte. The normalization only applies to injury and condition regions.
package bitfield

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/decodeerr"
)

// Sequence is a sequence of bits, index 0 is the first bit.
type Sequence []bool

// NormalizeBitOrder returns the 8 bits of b reversed from the least
// significant first order of a plain bit array, index 0 holds bit 7.
func NormalizeBitOrder(b byte) Sequence {
	seq := make(Sequence, 8)
	for i := 0; i < 8; i++ {
		// bit i of the least significant first order moves to index 7-i
		seq[7-i] = b&(1<<i) != 0
	}
	return seq
}

// Concat normalizes every byte and concatenates the results.
func Concat(data []byte) Sequence {
	seq := make(Sequence, 0, len(data)*8)
	for _, b := range data {
		seq = append(seq, NormalizeBitOrder(b)...)
	}
	return seq
}

// ExtractTwoBits reads the bit pair at start and start+1 as a big endian
// 2-bit value: the bit at start is worth 2, the bit at start+1 is worth 1.
func ExtractTwoBits(seq Sequence, start int) (int, error) {
	if start < 0 || start+1 >= len(seq) {
		return 0, fmt.Errorf("%w: bit pair at %d exceeds sequence length %d",
			decodeerr.ErrCorruptData, start, len(seq))
	}

	value := 0
	if seq[start] {
		value |= 2
	}
	if seq[start+1] {
		value |= 1
	}
	return value, nil
}

// Field returns the 2-bit field with the given index, field i spans the bits
// 2*i and 2*i+1 of the sequence.
func (s Sequence) Field(index int) (int, error) {
	return ExtractTwoBits(s, 2*index)
}

// String renders the sequence as 0 and 1 characters.
func (s Sequence) String() string {
	buf := make([]byte, len(s))
	for i, bit := range s {
		if bit {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
