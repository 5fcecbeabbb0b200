package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Account flags.
const (
	// FlagHibernated marks accounts whose code is not accessible anymore.
	FlagHibernated uint64 = 1 << 0
)

// Account is the state of an account kept under the account key of the
// trie. Code and storage are stored under separate keys, so the record only
// has nonce, balance and flags.
type Account struct {
	Nonce   uint64
	Balance *uint256.Int
	Flags   uint64
}

// accountRLP is the wire representation of Account, flags are omitted when
// not set.
type accountRLP struct {
	Nonce   uint64
	Balance *big.Int
	Flags   uint64 `rlp:"optional"`
}

// NewAccount returns an account with zero nonce and balance.
func NewAccount() *Account {
	return &Account{Balance: new(uint256.Int)}
}

// Bytes returns RLP-encoded account.
func (a *Account) Bytes() []byte {
	var bal = new(big.Int)
	if a.Balance != nil {
		bal = a.Balance.ToBig()
	}
	// Encoding of plain integers can't fail.
	data, _ := rlp.EncodeToBytes(&accountRLP{
		Nonce:   a.Nonce,
		Balance: bal,
		Flags:   a.Flags,
	})
	return data
}

// DecodeAccount decodes RLP-encoded account.
func DecodeAccount(data []byte) (*Account, error) {
	var r accountRLP
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	bal, overflow := uint256.FromBig(r.Balance)
	if overflow {
		return nil, fmt.Errorf("account: balance %s overflows 256 bits", r.Balance)
	}
	return &Account{
		Nonce:   r.Nonce,
		Balance: bal,
		Flags:   r.Flags,
	}, nil
}

// IsHibernated checks whether the account is hibernated.
func (a *Account) IsHibernated() bool {
	return a.Flags&FlagHibernated != 0
}

// Hibernate sets the hibernated flag.
func (a *Account) Hibernate() {
	a.Flags |= FlagHibernated
}

// AddBalance adds v to the balance and returns the new one. Balance wraps
// around on overflow.
func (a *Account) AddBalance(v *uint256.Int) *uint256.Int {
	if a.Balance == nil {
		a.Balance = new(uint256.Int)
	}
	a.Balance = new(uint256.Int).Add(a.Balance, v)
	return a.Balance.Clone()
}
