// Package decodeerr defines the error kinds reported while decoding cartridge
// images and save states, and a bounds checked view on raw file bytes.
package decodeerr

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test for them, the concrete errors returned
// by the decoders wrap one of these.
var (
	ErrIO                 = errors.New("file unreadable")
	ErrInvalidFileSize    = errors.New("invalid file size")
	ErrCorruptData        = errors.New("corrupt data")
	ErrUnsupportedVariant = errors.New("unsupported layout variant")
)

// OffsetError is returned when offset or pointer arithmetic points outside
// of the buffer that is decoded.
type OffsetError struct {
	Offset int
	Length int
	Size   int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("reading %d bytes at offset 0x%X exceeds buffer size 0x%X", e.Length, e.Offset, e.Size)
}

// Unwrap returns ErrCorruptData.
func (e *OffsetError) Unwrap() error {
	return ErrCorruptData
}

// SizeError is returned when a buffer length is outside of the accepted range.
type SizeError struct {
	Size int
	Min  int
	Max  int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("size %d is outside of accepted range [%d, %d]", e.Size, e.Min, e.Max)
}

// Unwrap returns ErrInvalidFileSize.
func (e *SizeError) Unwrap() error {
	return ErrInvalidFileSize
}

// Corrupt returns an error wrapping ErrCorruptData with the given message.
func Corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}
