/*
Package hash contains Keccak-256 hashing helpers and well-known hashes used
by tries and account records.
*/
package hash

import (
	"hash"
	"sync"

	"github.com/nspcc-dev/unitrie/pkg/util"
	"golang.org/x/crypto/sha3"
)

// keccakHasher is the subset of the sha3 state we need, it allows reading
// the digest without an extra allocation.
type keccakHasher interface {
	hash.Hash
	Read([]byte) (int, error)
}

var keccakPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

var (
	// EmptyKeccak is the Keccak-256 hash of an empty byte sequence, it's
	// the code hash of accounts without code.
	EmptyKeccak = Keccak256(nil)
	// EmptyTrieHash is the root hash of an empty legacy trie, it's the
	// Keccak-256 hash of RLP-encoded empty string (0x80).
	EmptyTrieHash = Keccak256([]byte{0x80})
)

// Keccak256 hashes the incoming byte slice using the legacy Keccak-256
// algorithm (the one used by Ethereum, not the standardized SHA3).
func Keccak256(data []byte) util.Uint256 {
	var res util.Uint256

	h := keccakPool.Get().(keccakHasher)
	h.Reset()
	_, _ = h.Write(data)
	_, _ = h.Read(res[:])
	keccakPool.Put(h)
	return res
}

// Keccak256Parts hashes the concatenation of the given parts.
func Keccak256Parts(parts ...[]byte) util.Uint256 {
	var res util.Uint256

	h := keccakPool.Get().(keccakHasher)
	h.Reset()
	for i := range parts {
		_, _ = h.Write(parts[i])
	}
	_, _ = h.Read(res[:])
	keccakPool.Put(h)
	return res
}
