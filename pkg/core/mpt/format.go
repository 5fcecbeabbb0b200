package mpt

import (
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Format selects node decoding, storage key layout and empty trie hash.
type Format byte

const (
	// Unitrie is the current format. Nodes and long values are kept under
	// separate storage prefixes, an empty trie hashes as an empty node.
	Unitrie Format = iota
	// Orchid is the legacy format. Nodes and long values share one key
	// space of raw hashes, an empty trie has the well-known hash of RLP
	// empty string.
	Orchid
)

var unitrieEmptyHash = [2]util.Uint256{
	(&Node{}).Hash(),
	(&Node{secure: true}).Hash(),
}

// String implements fmt.Stringer interface.
func (f Format) String() string {
	switch f {
	case Unitrie:
		return "unitrie"
	case Orchid:
		return "orchid"
	default:
		return "unknown"
	}
}

// Decode decodes node bytes with the decoder of the format.
func (f Format) Decode(data []byte) (*Node, error) {
	if f == Orchid {
		return DecodeLegacyNode(data)
	}
	return DecodeNode(data)
}

// NodeKey returns a storage key for the node with the given hash.
func (f Format) NodeKey(h util.Uint256) []byte {
	if f == Orchid {
		return h.BytesBE()
	}
	return makeStorageKey(storage.DataTrieNode, h)
}

// ValueKey returns a storage key for the long value with the given hash.
func (f Format) ValueKey(h util.Uint256) []byte {
	if f == Orchid {
		return h.BytesBE()
	}
	return makeStorageKey(storage.DataTrieValue, h)
}

// EmptyHash returns the root hash of an empty trie.
func (f Format) EmptyHash(secure bool) util.Uint256 {
	if f == Orchid {
		return hash.EmptyTrieHash
	}
	if secure {
		return unitrieEmptyHash[1]
	}
	return unitrieEmptyHash[0]
}

func makeStorageKey(prefix storage.KeyPrefix, h util.Uint256) []byte {
	key := make([]byte, 1+util.Uint256Size)
	key[0] = byte(prefix)
	copy(key[1:], h[:])
	return key
}
