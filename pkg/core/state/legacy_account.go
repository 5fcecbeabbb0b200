package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// LegacyAccount is an account record of the legacy account trie. It
// references contract storage and code by hash.
type LegacyAccount struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageRoot util.Uint256
	CodeHash    util.Uint256
	Flags       uint64
}

type legacyAccountRLP struct {
	Nonce       uint64
	Balance     []byte
	StorageRoot util.Uint256
	CodeHash    util.Uint256
	Flags       uint64 `rlp:"optional"`
}

// NewLegacyAccount returns a legacy account with no storage and code.
func NewLegacyAccount(a *Account) *LegacyAccount {
	la := &LegacyAccount{
		Nonce:       a.Nonce,
		Balance:     new(uint256.Int),
		StorageRoot: hash.EmptyTrieHash,
		CodeHash:    hash.EmptyKeccak,
		Flags:       a.Flags,
	}
	if a.Balance != nil {
		la.Balance.Set(a.Balance)
	}
	return la
}

// Bytes returns RLP-encoded legacy account.
func (a *LegacyAccount) Bytes() []byte {
	var bal []byte
	if a.Balance != nil && !a.Balance.IsZero() {
		bal = a.Balance.Bytes()
	}
	// Encoding of fixed-size fields can't fail.
	data, _ := rlp.EncodeToBytes(&legacyAccountRLP{
		Nonce:       a.Nonce,
		Balance:     bal,
		StorageRoot: a.StorageRoot,
		CodeHash:    a.CodeHash,
		Flags:       a.Flags,
	})
	return data
}

// DecodeLegacyAccount decodes a legacy account record. Integers with
// leading zeroes and trailing list elements written by old nodes are
// accepted.
func DecodeLegacyAccount(data []byte) (*LegacyAccount, error) {
	list, rest, err := rlp.SplitList(data)
	if err != nil {
		return nil, fmt.Errorf("legacy account: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("legacy account: %d trailing bytes", len(rest))
	}
	var fields [5][]byte
	var n int
	for ; len(list) > 0 && n < len(fields); n++ {
		fields[n], list, err = rlp.SplitString(list)
		if err != nil {
			return nil, fmt.Errorf("legacy account: field %d: %w", n, err)
		}
	}
	if n < 4 {
		return nil, fmt.Errorf("legacy account: %d fields", n)
	}

	a := &LegacyAccount{Balance: new(uint256.Int)}
	if a.Nonce, err = decodeUint64(fields[0]); err != nil {
		return nil, fmt.Errorf("legacy account: nonce: %w", err)
	}
	if len(fields[1]) > 32 {
		return nil, fmt.Errorf("legacy account: balance of %d bytes", len(fields[1]))
	}
	a.Balance.SetBytes(fields[1])
	if a.StorageRoot, err = decodeHash(fields[2]); err != nil {
		return nil, fmt.Errorf("legacy account: storage root: %w", err)
	}
	if a.CodeHash, err = decodeHash(fields[3]); err != nil {
		return nil, fmt.Errorf("legacy account: code hash: %w", err)
	}
	if n > 4 {
		if a.Flags, err = decodeUint64(fields[4]); err != nil {
			return nil, fmt.Errorf("legacy account: flags: %w", err)
		}
	}
	return a, nil
}

// Account returns the current representation of the account.
func (a *LegacyAccount) Account() *Account {
	return &Account{
		Nonce:   a.Nonce,
		Balance: a.Balance.Clone(),
		Flags:   a.Flags,
	}
}

func decodeUint64(b []byte) (uint64, error) {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, fmt.Errorf("integer of %d bytes", len(b))
	}
	var res uint64
	for _, c := range b {
		res = res<<8 | uint64(c)
	}
	return res, nil
}

func decodeHash(b []byte) (util.Uint256, error) {
	return util.Uint256DecodeBytesBE(b)
}
