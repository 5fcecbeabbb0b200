package mpt

// Paths are kept in the expanded form, one byte per bit with values of 0 or
// 1, most significant bit of each key byte first.

// toBits expands key into a bit path.
func toBits(key []byte) []byte {
	res := make([]byte, len(key)*8)
	for i, b := range key {
		for j := 0; j < 8; j++ {
			res[i*8+j] = (b >> (7 - j)) & 1
		}
	}
	return res
}

// fromBits packs the bit path back into bytes. Incomplete trailing byte is
// padded with zero bits.
func fromBits(path []byte) []byte {
	res := make([]byte, encodedPathLength(len(path)))
	for k, bit := range path {
		res[k/8] |= bit << (7 - k%8)
	}
	return res
}

// encodedPathLength returns the number of bytes needed to store a path of
// the given bit length.
func encodedPathLength(bits int) int {
	return bits/8 + (bits%8+7)/8
}

// decodePath expands the first bits of the encoded path.
func decodePath(enc []byte, bits int) []byte {
	res := make([]byte, bits)
	for k := 0; k < bits; k++ {
		res[k] = (enc[k/8] >> (7 - k%8)) & 1
	}
	return res
}

// lcp returns the length of the common prefix of a and b.
func lcp(a, b []byte) int {
	if len(a) > len(b) {
		return lcp(b, a)
	}

	var i int
	for i = 0; i < len(a) && a[i] == b[i]; i++ {
	}

	return i
}

// concatPath creates a new path from the parts without touching their
// underlying arrays.
func concatPath(prefix []byte, bit byte, suffix []byte) []byte {
	res := make([]byte, len(prefix)+1+len(suffix))
	copy(res, prefix)
	res[len(prefix)] = bit
	copy(res[len(prefix)+1:], suffix)
	return res
}
