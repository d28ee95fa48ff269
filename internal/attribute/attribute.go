// Package attribute maps the 4-bit attribute codes stored in the cartridge to
// their scaled in-game values and back.
package attribute

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/decodeerr"
)

// MaxCode is the highest attribute code.
const MaxCode = 15

// values is strictly increasing, the index is the nibble code.
var values = [MaxCode + 1]int{6, 13, 19, 25, 31, 38, 44, 50, 56, 63, 69, 75, 81, 88, 94, 100}

// Decode returns the scaled 6..100 value for a nibble code 0..15.
func Decode(code byte) (int, error) {
	if code > MaxCode {
		return 0, decodeerr.Corrupt("attribute code %d out of range", code)
	}
	return values[code], nil
}

// Encode returns the nibble code for a scaled value. It is the exact inverse
// of Decode and only defined for the 16 table values.
func Encode(value int) (byte, error) {
	for code, v := range values {
		if v == value {
			return byte(code), nil
		}
		if v > value {
			break
		}
	}
	return 0, fmt.Errorf("%w: %d is not an attribute value", decodeerr.ErrCorruptData, value)
}

// Values returns all 16 scaled values in code order.
func Values() []int {
	result := make([]int, len(values))
	copy(result, values[:])
	return result
}

// AdjustForCondition moves a scaled value by delta steps on the code scale,
// clamped to the lowest and highest code. Good condition moves a rated value
// one step up, for example 81 becomes 88.
func AdjustForCondition(value, delta int) (int, error) {
	code, err := Encode(value)
	if err != nil {
		return 0, err
	}

	adjusted := int(code) + delta
	switch {
	case adjusted < 0:
		adjusted = 0
	case adjusted > MaxCode:
		adjusted = MaxCode
	}
	return values[adjusted], nil
}

// SplitNibbles returns the high and the low nibble of a byte.
func SplitNibbles(b byte) (high, low byte) {
	return b >> 4, b & 0x0F
}
