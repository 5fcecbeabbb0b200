package random

import (
	"math/rand"
	"time"

	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Bytes returns a random byte slice of specified length.
func Bytes(n int) []byte {
	b := make([]byte, n)
	Fill(b)
	return b
}

// Fill fills buffer with random bytes.
func Fill(buf []byte) {
	// Rand reader returns no errors
	r.Read(buf)
}

// Int returns a random integer in [minI,maxI).
func Int(minI, maxI int) int {
	return minI + r.Intn(maxI-minI)
}

// Uint160 returns a random Uint160.
func Uint160() util.Uint160 {
	var u util.Uint160
	Fill(u[:])
	return u
}

// Uint256 returns a random Uint256.
func Uint256() util.Uint256 {
	var u util.Uint256
	Fill(u[:])
	return u
}

// Perm returns a random permutation of [0,n).
func Perm(n int) []int {
	return r.Perm(n)
}

var r = rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
