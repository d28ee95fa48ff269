package decodeerr

// Buffer is a read only view on file bytes where every access is bounds
// checked. Reads outside of the data return an *OffsetError.
type Buffer []byte

// Len returns the buffer size.
func (b Buffer) Len() int {
	return len(b)
}

// Byte returns the byte at the given offset.
func (b Buffer) Byte(offset int) (byte, error) {
	if offset < 0 || offset >= len(b) {
		return 0, &OffsetError{Offset: offset, Length: 1, Size: len(b)}
	}
	return b[offset], nil
}

// Slice returns length bytes starting at offset. The returned slice shares
// the underlying data and must not be modified.
func (b Buffer) Slice(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(b) {
		return nil, &OffsetError{Offset: offset, Length: length, Size: len(b)}
	}
	return b[offset : offset+length], nil
}

// Word returns the little endian 16 bit value at offset.
func (b Buffer) Word(offset int) (uint16, error) {
	data, err := b.Slice(offset, 2)
	if err != nil {
		return 0, err
	}
	return uint16(data[1])<<8 | uint16(data[0]), nil
}

// Equal returns whether the bytes at offset match the given signature.
// A signature that does not fit into the buffer does not match.
func (b Buffer) Equal(offset int, signature []byte) bool {
	data, err := b.Slice(offset, len(signature))
	if err != nil {
		return false
	}
	for i, v := range signature {
		if data[i] != v {
			return false
		}
	}
	return true
}
