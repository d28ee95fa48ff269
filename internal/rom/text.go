package rom

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
)

// pointerText returns the bytes of the text field whose pointer is stored at
// pointerOffset. The pointer and its successor are read as little endian
// words, their difference is the field length.
func pointerText(data decodeerr.Buffer, pointerOffset, adjust int) ([]byte, error) {
	start, err := data.Word(pointerOffset)
	if err != nil {
		return nil, fmt.Errorf("reading pointer: %w", err)
	}
	end, err := data.Word(pointerOffset + layout.PointerSize)
	if err != nil {
		return nil, fmt.Errorf("reading next pointer: %w", err)
	}

	length := int(end) - int(start)
	if length < 0 {
		return nil, decodeerr.Corrupt("pointer 0x%04X at 0x%X is followed by smaller pointer 0x%04X",
			start, pointerOffset, end)
	}

	text, err := data.Slice(int(start)+adjust, length)
	if err != nil {
		return nil, fmt.Errorf("reading text of pointer at 0x%X: %w", pointerOffset, err)
	}
	return text, nil
}

// ascii converts 7-bit ASCII bytes to a string, other bytes become '?'.
func ascii(data []byte) string {
	buf := make([]byte, len(data))
	for i, b := range data {
		if b > 0x7F {
			b = '?'
		}
		buf[i] = b
	}
	return string(buf)
}

// splitName splits a "firstnameLASTNAME" text at the first upper case
// letter. Everything from there on belongs to the last name.
func splitName(text string) (first, last string) {
	for i := 0; i < len(text); i++ {
		if text[i] >= 'A' && text[i] <= 'Z' {
			return text[:i], text[i:]
		}
	}
	return text, ""
}
