/*
Package slice contains byte slice helpers.
*/
package slice

// Copy creates a copy of b. It returns nil for nil input.
func Copy(b []byte) []byte {
	if b == nil {
		return nil
	}
	d := make([]byte, len(b))
	copy(d, b)
	return d
}

// Concat returns a new byte slice containing all the given parts one after
// another.
func Concat(parts ...[]byte) []byte {
	var n int
	for i := range parts {
		n += len(parts[i])
	}
	res := make([]byte, 0, n)
	for i := range parts {
		res = append(res, parts[i]...)
	}
	return res
}

// LeftPad returns b right-aligned in a zero-filled slice of the given size.
// If b is longer than size, only the last size bytes are kept.
func LeftPad(b []byte, size int) []byte {
	res := make([]byte, size)
	if len(b) > size {
		b = b[len(b)-size:]
	}
	copy(res[size-len(b):], b)
	return res
}

// TrimLeadingZeros returns a subslice of b without leading zero bytes.
func TrimLeadingZeros(b []byte) []byte {
	var i int
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}
