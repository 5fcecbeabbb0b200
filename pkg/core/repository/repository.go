/*
Package repository implements account, code and contract storage access on
top of a single authenticated trie.
*/
package repository

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/unitrie/pkg/core/mpt"
	"github.com/nspcc-dev/unitrie/pkg/core/state"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/nspcc-dev/unitrie/pkg/util/slice"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// Repository provides account-level access to the state trie. All methods
// are safe for concurrent use. Every modification replaces the current trie
// with a new snapshot, nothing is written to the store until Save or
// GetRoot is called.
type Repository struct {
	lock sync.Mutex
	log  *zap.Logger
	trie *mpt.Trie

	// parent is set for tracking repositories only.
	parent  *Repository
	changes []change
}

type changeKind byte

const (
	changePut changeKind = iota
	changeDeleteRecursive
)

// change is a single entry of tracking repository change log.
type change struct {
	kind  changeKind
	key   []byte
	value []byte
}

// New creates a repository working on top of tr.
func New(tr *mpt.Trie, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{
		log:  log,
		trie: tr,
	}
}

// Trie returns the current trie snapshot.
func (r *Repository) Trie() *mpt.Trie {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.trie
}

// Secure returns whether account and storage keys are hashed.
func (r *Repository) Secure() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.trie.Secure()
}

func (r *Repository) get(key []byte) ([]byte, error) {
	v, err := r.trie.Get(key)
	if errors.Is(err, mpt.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (r *Repository) put(key, value []byte) error {
	tr, err := r.trie.Put(key, value)
	if err != nil {
		return err
	}
	r.trie = tr
	if r.parent != nil {
		r.changes = append(r.changes, change{kind: changePut, key: key, value: slice.Copy(value)})
	}
	return nil
}

func (r *Repository) deleteRecursive(key []byte) error {
	tr, err := r.trie.DeleteRecursive(key)
	if err != nil {
		return err
	}
	r.trie = tr
	if r.parent != nil {
		r.changes = append(r.changes, change{kind: changeDeleteRecursive, key: key})
	}
	return nil
}

func (r *Repository) isExist(addr util.Uint160) (bool, error) {
	l, err := r.trie.GetValueLength(AccountKey(addr, r.trie.Secure()))
	if errors.Is(err, mpt.ErrNotFound) {
		return false, nil
	}
	return l > 0, err
}

func (r *Repository) getAccountState(addr util.Uint160) (*state.Account, error) {
	data, err := r.get(AccountKey(addr, r.trie.Secure()))
	if err != nil || data == nil {
		return nil, err
	}
	a, err := state.DecodeAccount(data)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", addr.StringBE(), err)
	}
	return a, nil
}

func (r *Repository) getAccountStateOrNew(addr util.Uint160) (*state.Account, error) {
	a, err := r.getAccountState(addr)
	if err != nil || a != nil {
		return a, err
	}
	return r.createAccount(addr)
}

func (r *Repository) updateAccountState(addr util.Uint160, a *state.Account) error {
	return r.put(AccountKey(addr, r.trie.Secure()), a.Bytes())
}

func (r *Repository) createAccount(addr util.Uint160) (*state.Account, error) {
	a := state.NewAccount()
	return a, r.updateAccountState(addr, a)
}

func (r *Repository) setupContract(addr util.Uint160) error {
	return r.put(StoragePrefixKey(addr, r.trie.Secure()), storageMarker)
}

// CreateAccount creates an empty account replacing the existing one if any.
func (r *Repository) CreateAccount(addr util.Uint160) (*state.Account, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.createAccount(addr)
}

// IsExist checks whether the account exists.
func (r *Repository) IsExist(addr util.Uint160) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.isExist(addr)
}

// GetAccountState returns the account state, nil if there is no such
// account.
func (r *Repository) GetAccountState(addr util.Uint160) (*state.Account, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.getAccountState(addr)
}

// UpdateAccountState puts the account state.
func (r *Repository) UpdateAccountState(addr util.Uint160, a *state.Account) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.updateAccountState(addr, a)
}

// SetupContract marks the account as the one having storage.
func (r *Repository) SetupContract(addr util.Uint160) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.setupContract(addr)
}

// ContractHasStorage checks whether SetupContract was called for the account.
func (r *Repository) ContractHasStorage(addr util.Uint160) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	v, err := r.get(StoragePrefixKey(addr, r.trie.Secure()))
	return v != nil, err
}

// AddStorageBytes puts the value into the contract storage cell. Empty value
// deletes the cell. Missing account is created and set up as a contract.
func (r *Repository) AddStorageBytes(addr util.Uint160, key util.Uint256, value []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.addStorageBytes(addr, key, value)
}

func (r *Repository) addStorageBytes(addr util.Uint160, key util.Uint256, value []byte) error {
	ok, err := r.isExist(addr)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := r.createAccount(addr); err != nil {
			return err
		}
		if err := r.setupContract(addr); err != nil {
			return err
		}
	}
	return r.put(StorageKey(addr, key.BytesBE(), r.trie.Secure()), value)
}

// GetStorageBytes returns the contents of the contract storage cell, nil if
// there is no such cell.
func (r *Repository) GetStorageBytes(addr util.Uint160, key util.Uint256) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.get(StorageKey(addr, key.BytesBE(), r.trie.Secure()))
}

// AddStorageRow puts the storage word. Words are stored without leading
// zeroes, zero word deletes the cell.
func (r *Repository) AddStorageRow(addr util.Uint160, key util.Uint256, value *uint256.Int) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	var data []byte
	if value != nil && !value.IsZero() {
		data = value.Bytes()
	}
	return r.addStorageBytes(addr, key, data)
}

// GetStorageValue returns the storage word, nil if there is no such cell.
func (r *Repository) GetStorageValue(addr util.Uint160, key util.Uint256) (*uint256.Int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	data, err := r.get(StorageKey(addr, key.BytesBE(), r.trie.Secure()))
	if err != nil || data == nil {
		return nil, err
	}
	if len(data) > 32 {
		return nil, fmt.Errorf("storage value of %d bytes is not a word", len(data))
	}
	return new(uint256.Int).SetBytes(data), nil
}

// SaveCode puts the account code. An account is created for non-empty code
// if it doesn't exist.
func (r *Repository) SaveCode(addr util.Uint160, code []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if err := r.put(CodeKey(addr, r.trie.Secure()), code); err != nil {
		return err
	}
	if len(code) == 0 {
		return nil
	}
	ok, err := r.isExist(addr)
	if err != nil || ok {
		return err
	}
	_, err = r.createAccount(addr)
	return err
}

// codeAccessible returns whether the code of account can be read.
func (r *Repository) codeAccessible(addr util.Uint160) (bool, error) {
	a, err := r.getAccountState(addr)
	if err != nil {
		return false, err
	}
	return a != nil && !a.IsHibernated(), nil
}

// GetCode returns the account code. It's empty for absent and hibernated
// accounts.
func (r *Repository) GetCode(addr util.Uint160) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	ok, err := r.codeAccessible(addr)
	if err != nil || !ok {
		return []byte{}, err
	}
	code, err := r.get(CodeKey(addr, r.trie.Secure()))
	if code == nil && err == nil {
		code = []byte{}
	}
	return code, err
}

// GetCodeHash returns Keccak-256 hash of the account code. It's the hash of
// empty data for accounts without code and zero hash for absent and
// hibernated accounts.
func (r *Repository) GetCodeHash(addr util.Uint160) (util.Uint256, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	ok, err := r.codeAccessible(addr)
	if err != nil || !ok {
		return util.Uint256{}, err
	}
	h, err := r.trie.GetValueHash(CodeKey(addr, r.trie.Secure()))
	if errors.Is(err, mpt.ErrNotFound) {
		return hash.EmptyKeccak, nil
	}
	return h, err
}

// GetCodeLength returns the length of the account code.
func (r *Repository) GetCodeLength(addr util.Uint160) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	ok, err := r.codeAccessible(addr)
	if err != nil || !ok {
		return 0, err
	}
	l, err := r.trie.GetValueLength(CodeKey(addr, r.trie.Secure()))
	if errors.Is(err, mpt.ErrNotFound) {
		return 0, nil
	}
	return l, err
}

// Delete removes the account together with its code and storage.
func (r *Repository) Delete(addr util.Uint160) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.deleteRecursive(AccountKey(addr, r.trie.Secure()))
}

// Hibernate sets hibernated flag of the account creating it if needed.
func (r *Repository) Hibernate(addr util.Uint160) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	a, err := r.getAccountStateOrNew(addr)
	if err != nil {
		return err
	}
	a.Hibernate()
	return r.updateAccountState(addr, a)
}

// SetNonce sets the account nonce creating the account if needed.
func (r *Repository) SetNonce(addr util.Uint160, nonce uint64) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	a, err := r.getAccountStateOrNew(addr)
	if err != nil {
		return err
	}
	a.Nonce = nonce
	return r.updateAccountState(addr, a)
}

// IncreaseNonce increments the account nonce and returns the new one.
func (r *Repository) IncreaseNonce(addr util.Uint160) (uint64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	a, err := r.getAccountStateOrNew(addr)
	if err != nil {
		return 0, err
	}
	a.Nonce++
	return a.Nonce, r.updateAccountState(addr, a)
}

// GetNonce returns the account nonce, zero for absent accounts.
func (r *Repository) GetNonce(addr util.Uint160) (uint64, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	a, err := r.getAccountState(addr)
	if err != nil || a == nil {
		return 0, err
	}
	return a.Nonce, nil
}

// GetBalance returns the account balance, zero for absent accounts.
func (r *Repository) GetBalance(addr util.Uint160) (*uint256.Int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	a, err := r.getAccountState(addr)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return new(uint256.Int), nil
	}
	return a.Balance, nil
}

// AddBalance adds v to the account balance and returns the new balance.
func (r *Repository) AddBalance(addr util.Uint160, v *uint256.Int) (*uint256.Int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	a, err := r.getAccountStateOrNew(addr)
	if err != nil {
		return nil, err
	}
	res := a.AddBalance(v)
	return res, r.updateAccountState(addr, a)
}

// GetStorageStateRoot returns the hash of the contract storage subtrie. It's
// the legacy empty trie hash for accounts without storage.
func (r *Repository) GetStorageStateRoot(addr util.Uint160) (util.Uint256, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	sub, err := r.trie.Find(StoragePrefixKey(addr, r.trie.Secure()))
	if errors.Is(err, mpt.ErrNotFound) {
		return hash.EmptyTrieHash, nil
	}
	if err != nil {
		return util.Uint256{}, err
	}
	return sub.Hash(), nil
}

// GetAccountsKeys returns account key suffixes of all accounts. For
// non-secure tries these are addresses, for secure tries these are hashes
// of addresses.
func (r *Repository) GetAccountsKeys() ([][]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	size := 1 + util.Uint160Size
	if r.trie.Secure() {
		size = 1 + util.Uint256Size
	}
	keys, err := r.trie.CollectKeys(size)
	if err != nil {
		return nil, err
	}
	res := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k[0] == DomainPrefix {
			res = append(res, k[1:])
		}
	}
	return res, nil
}

// GetAccounts returns addresses of all accounts of non-secure repository.
func (r *Repository) GetAccounts() ([]util.Uint160, error) {
	if r.Secure() {
		return nil, fmt.Errorf("%w: addresses can't be recovered from secure keys", mpt.ErrPrecondition)
	}
	keys, err := r.GetAccountsKeys()
	if err != nil {
		return nil, err
	}
	res := make([]util.Uint160, len(keys))
	for i := range keys {
		copy(res[i][:], keys[i])
	}
	return res, nil
}

// UpdateBatch applies a set of raw trie changes, empty value deletes the
// key.
func (r *Repository) UpdateBatch(batch map[string][]byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.log.Debug("updating batch", zap.Int("size", len(batch)))

	keys := maps.Keys(batch)
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.put([]byte(k), batch[k]); err != nil {
			return fmt.Errorf("key %x: %w", k, err)
		}
	}
	return nil
}

// StartTracking returns a child repository which accumulates changes on top
// of the current state of r. Changes are applied to r on Commit only.
func (r *Repository) StartTracking() *Repository {
	r.lock.Lock()
	defer r.lock.Unlock()
	return &Repository{
		log:    r.log,
		trie:   r.trie,
		parent: r,
	}
}

// Commit applies changes of tracking repository to its parent. It's a no-op
// for non-tracking repositories.
func (r *Repository) Commit() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.parent == nil {
		return nil
	}
	p := r.parent
	p.lock.Lock()
	defer p.lock.Unlock()
	for _, c := range r.changes {
		var err error
		switch c.kind {
		case changePut:
			err = p.put(c.key, c.value)
		case changeDeleteRecursive:
			err = p.deleteRecursive(c.key)
		}
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
	}
	r.log.Debug("changes committed", zap.Int("changes", len(r.changes)))
	r.changes = nil
	r.trie = p.trie
	return nil
}

// Rollback drops uncommitted changes of tracking repository.
func (r *Repository) Rollback() {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.parent == nil {
		return
	}
	r.changes = nil
	r.trie = r.parent.Trie()
}

// Save persists all pending trie nodes.
func (r *Repository) Save() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.trie.Save()
}

// GetRoot persists pending trie nodes and returns the root hash.
func (r *Repository) GetRoot() (util.Uint256, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if err := r.trie.Save(); err != nil {
		return util.Uint256{}, err
	}
	h := r.trie.Hash()
	r.log.Debug("repository root", zap.Stringer("hash", h))
	return h, nil
}

// SyncToRoot switches the repository to the state with the given root.
func (r *Repository) SyncToRoot(root util.Uint256) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	tr, err := r.trie.GetSnapshotTo(root)
	if err != nil {
		return err
	}
	r.trie = tr
	return nil
}

// GetSnapshotTo returns a new independent repository with the state of the
// given root.
func (r *Repository) GetSnapshotTo(root util.Uint256) (*Repository, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	tr, err := r.trie.GetSnapshotTo(root)
	if err != nil {
		return nil, err
	}
	return New(tr, r.log), nil
}
