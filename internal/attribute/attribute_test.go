package attribute

import (
	"errors"
	"testing"

	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeEncode_RoundTrip(t *testing.T) {
	for code := byte(0); code <= MaxCode; code++ {
		value, err := Decode(code)
		assert.NoError(t, err)

		back, err := Encode(value)
		assert.NoError(t, err)
		assert.Equal(t, code, back)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		code     byte
		expected int
	}{
		{0x0, 6},
		{0x3, 25},
		{0x9, 63},
		{0xA, 69},
		{0xC, 81},
		{0xF, 100},
	}

	for _, tt := range tests {
		value, err := Decode(tt.code)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, value)
	}

	_, err := Decode(16)
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
}

func TestEncode_NotInTable(t *testing.T) {
	for _, value := range []int{0, 5, 7, 12, 50 + 1, 99, 101, -6} {
		_, err := Encode(value)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
	}
}

func TestValues_StrictlyIncreasing(t *testing.T) {
	vals := Values()
	assert.Len(t, vals, 16)
	for i := 1; i < len(vals); i++ {
		assert.True(t, vals[i] > vals[i-1])
	}
}

func TestAdjustForCondition(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		delta    int
		expected int
	}{
		{name: "average keeps value", value: 81, delta: 0, expected: 81},
		{name: "bad lowers one step", value: 81, delta: -1, expected: 75},
		{name: "good raises one step", value: 81, delta: 1, expected: 88},
		{name: "excellent raises two steps", value: 81, delta: 2, expected: 94},
		{name: "clamped at top", value: 94, delta: 2, expected: 100},
		{name: "clamped at bottom", value: 6, delta: -1, expected: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := AdjustForCondition(tt.value, tt.delta)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}

	_, err := AdjustForCondition(80, 1)
	assert.Error(t, err)
}

func TestSplitNibbles(t *testing.T) {
	high, low := SplitNibbles(0xA3)
	assert.Equal(t, byte(0xA), high)
	assert.Equal(t, byte(0x3), low)
}
