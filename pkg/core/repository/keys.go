package repository

import (
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Key space layout. Every account owns a subtrie under its account key, so
// removing that subtrie removes account state, code and storage at once.
const (
	// DomainPrefix is the first byte of every account key.
	DomainPrefix byte = 0x00
	// CodePrefix is appended to the account key to get the code key.
	CodePrefix byte = 0x80
	// StoragePrefix is appended to the account key to get the storage
	// root key, storage cells are stored below it.
	StoragePrefix byte = 0x00
)

// storageMarker is the value kept under the storage root key of contracts.
var storageMarker = []byte{0x01}

// AccountKey returns the trie key of the account state.
func AccountKey(addr util.Uint160, secure bool) []byte {
	var k []byte
	if secure {
		h := hash.Keccak256(addr.BytesBE())
		k = make([]byte, 1+util.Uint256Size)
		copy(k[1:], h[:])
	} else {
		k = make([]byte, 1+util.Uint160Size)
		copy(k[1:], addr[:])
	}
	k[0] = DomainPrefix
	return k
}

func accountChildKey(addr util.Uint160, child byte, secure bool) []byte {
	k := AccountKey(addr, secure)
	return append(k, child)
}

// CodeKey returns the trie key of the account code.
func CodeKey(addr util.Uint160, secure bool) []byte {
	return accountChildKey(addr, CodePrefix, secure)
}

// StoragePrefixKey returns the trie key of the contract storage root. It
// holds a marker value, cells are stored under longer keys.
func StoragePrefixKey(addr util.Uint160, secure bool) []byte {
	return accountChildKey(addr, StoragePrefix, secure)
}

// StorageKey returns the trie key of the contract storage cell.
func StorageKey(addr util.Uint160, subkey []byte, secure bool) []byte {
	k := StoragePrefixKey(addr, secure)
	if secure {
		h := hash.Keccak256(subkey)
		return append(k, h[:]...)
	}
	return append(k, subkey...)
}
