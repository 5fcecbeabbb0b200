package migration

import (
	"bytes"
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/core/mpt"
	"github.com/nspcc-dev/unitrie/pkg/core/repository"
	"github.com/nspcc-dev/unitrie/pkg/core/state"
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// converter rebuilds the legacy account trie from a Unitrie. Account and
// storage cell keys are hashed in legacy tries, for a secure Unitrie these
// hashes are already key suffixes.
type converter struct {
	secure   bool
	accounts *mpt.Trie

	// Current account.
	key      []byte
	account  *state.Account
	codeHash util.Uint256
	storage  *mpt.Trie
}

// OrchidRoot returns the root of the legacy account trie holding the same
// accounts, contract storage and code as tr.
func OrchidRoot(tr *mpt.Trie) (util.Uint256, error) {
	c := &converter{
		secure:   tr.Secure(),
		accounts: newOrchidTrie(),
	}
	accountKeyLen := 1 + util.Uint160Size
	if c.secure {
		accountKeyLen = 1 + util.Uint256Size
	}

	it := tr.Iterator(mpt.PreOrder)
	for it.Next() {
		if !it.Node().HasValue() {
			continue
		}
		k := it.Key()
		switch {
		case len(k) == accountKeyLen && k[0] == repository.DomainPrefix:
			if err := c.flush(); err != nil {
				return util.Uint256{}, err
			}
			v, err := it.Value()
			if err != nil {
				return util.Uint256{}, err
			}
			acc, err := state.DecodeAccount(v)
			if err != nil {
				return util.Uint256{}, fmt.Errorf("account %x: %w", k[1:], err)
			}
			c.key, c.account = k, acc
			c.codeHash = hash.EmptyKeccak
			c.storage = newOrchidTrie()
		case c.account != nil && bytes.HasPrefix(k, c.key):
			if err := c.child(k[len(c.key):], it); err != nil {
				return util.Uint256{}, err
			}
		}
	}
	if err := it.Err(); err != nil {
		return util.Uint256{}, err
	}
	if err := c.flush(); err != nil {
		return util.Uint256{}, err
	}
	return c.accounts.Hash(), nil
}

func newOrchidTrie() *mpt.Trie {
	return mpt.NewTrie(mpt.NewTrieStore(storage.NewMemoryStore(), mpt.Orchid), true)
}

func (c *converter) child(rest []byte, it *mpt.Iterator) error {
	isCode := len(rest) == 1 && rest[0] == repository.CodePrefix
	isCell := len(rest) == 1+util.Uint256Size && rest[0] == repository.StoragePrefix
	if !isCode && !isCell {
		return nil
	}
	v, err := it.Value()
	if err != nil {
		return err
	}
	if isCode {
		c.codeHash = hash.Keccak256(v)
		return nil
	}
	c.storage, err = c.storage.Put(c.orchidKey(rest[1:]), v)
	return err
}

func (c *converter) orchidKey(suffix []byte) []byte {
	if c.secure {
		return suffix
	}
	h := hash.Keccak256(suffix)
	return h[:]
}

func (c *converter) flush() error {
	if c.account == nil {
		return nil
	}
	la := &state.LegacyAccount{
		Nonce:       c.account.Nonce,
		Balance:     c.account.Balance,
		StorageRoot: c.storage.Hash(),
		CodeHash:    c.codeHash,
		Flags:       c.account.Flags,
	}
	var err error
	c.accounts, err = c.accounts.Put(c.orchidKey(c.key[1:]), la.Bytes())
	c.account = nil
	return err
}
