/*
Package migration converts legacy account state into a Unitrie.

Legacy state consists of a per-block account trie with hashed account keys,
contract details records holding storage keys, code and contract storage
tries, and a separate code store. The migrator walks legacy account tries
block by block and merges every block's delta into a single Unitrie,
periodically checking that the result converts back into the legacy root.
*/
package migration

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/unitrie/pkg/core/mpt"
	"github.com/nspcc-dev/unitrie/pkg/core/repository"
	"github.com/nspcc-dev/unitrie/pkg/core/state"
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// ErrRootMismatch is returned when the converted state doesn't match the
// legacy state root.
var ErrRootMismatch = errors.New("state root mismatch")

// accountPathBits is the path length of account leaves in legacy tries.
const accountPathBits = 8 * util.Uint256Size

// storageCacheSize is the number of decoded embedded contract storages kept.
const storageCacheSize = 1024

// Config is a migration configuration.
type Config struct {
	// StartHeight is the first migrated block.
	StartHeight uint64
	// VerifyInterval is the number of blocks between state root checks, the
	// last block is always checked. Zero means the last block only.
	VerifyInterval uint64
	// LogInterval is the number of blocks between progress messages. Zero
	// disables them.
	LogInterval uint64
	// PersistInterval is the number of blocks between flushes of the
	// destination store. Zero means only the final flush.
	PersistInterval uint64
	// CacheSize is the node cache size for legacy and new tries.
	CacheSize int
	// Secure enables hashed keys in the resulting Unitrie.
	Secure bool
	// ExtraAddresses are known account addresses that have no contract
	// details records.
	ExtraAddresses []util.Uint160
}

// Migrator converts legacy state into a Unitrie. It's not safe for
// concurrent use except for progress getters.
type Migrator struct {
	log    *zap.Logger
	cfg    Config
	legacy Legacy

	dest        *storage.MemCachedStore
	trie        *mpt.Trie
	legacyNodes *mpt.CachedStore

	// addresses maps hashes of known addresses to addresses.
	addresses map[util.Uint256]util.Uint160
	// leaves holds value hashes of account leaves of the previous block.
	leaves    map[util.Uint256]util.Uint256
	dedicated map[util.Uint160]*mpt.TrieStore
	blobs     *lru.Cache

	started  bool
	prevRoot util.Uint256

	height   atomic.Uint64
	accounts atomic.Uint64
}

// DefaultExtraAddresses are REMASC addresses.
var DefaultExtraAddresses = []util.Uint160{RemascAddress, ZeroAddress}

// New creates a migrator writing into dest. Contract details store is
// scanned for known addresses at this point.
func New(legacy Legacy, dest storage.Store, cfg Config, log *zap.Logger) (*Migrator, error) {
	if legacy.State == nil || legacy.Details == nil || legacy.Contracts == nil || legacy.Blocks == nil {
		return nil, errors.New("incomplete legacy database")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = mpt.DefaultCacheSize
	}

	m := &Migrator{
		log:       log,
		cfg:       cfg,
		legacy:    legacy,
		dest:      storage.NewMemCachedStore(dest),
		addresses: make(map[util.Uint256]util.Uint160),
		leaves:    make(map[util.Uint256]util.Uint256),
		dedicated: make(map[util.Uint160]*mpt.TrieStore),
	}
	var err error
	m.legacyNodes, err = mpt.NewCachedStore(mpt.NewTrieStore(legacy.State, mpt.Orchid), cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	nodes, err := mpt.NewCachedStore(mpt.NewTrieStore(m.dest, mpt.Unitrie), cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	m.trie = mpt.NewTrie(nodes, cfg.Secure)
	m.blobs, err = lru.New(storageCacheSize)
	if err != nil {
		return nil, err
	}

	legacy.Details.Seek(storage.SeekRange{}, func(k, _ []byte) bool {
		if len(k) == util.Uint160Size {
			var addr util.Uint160
			copy(addr[:], k)
			m.addresses[hash.Keccak256(k)] = addr
		}
		return true
	})
	for _, addr := range cfg.ExtraAddresses {
		m.addresses[hash.Keccak256(addr.BytesBE())] = addr
	}
	log.Info("known addresses collected", zap.Int("count", len(m.addresses)))
	return m, nil
}

// Height returns the last migrated block height.
func (m *Migrator) Height() uint64 {
	return m.height.Load()
}

// Accounts returns the number of converted account records.
func (m *Migrator) Accounts() uint64 {
	return m.accounts.Load()
}

// Trie returns the resulting Unitrie.
func (m *Migrator) Trie() *mpt.Trie {
	return m.trie
}

// Run migrates all blocks from the configured start height up to the
// current legacy height and returns the resulting state root. Any error
// aborts the migration.
func (m *Migrator) Run(ctx context.Context) (util.Uint256, error) {
	top, err := m.legacy.Blocks.Height()
	if err != nil {
		return util.Uint256{}, fmt.Errorf("legacy height: %w", err)
	}
	if top < m.cfg.StartHeight {
		return util.Uint256{}, fmt.Errorf("%w: start height %d is above legacy height %d",
			mpt.ErrPrecondition, m.cfg.StartHeight, top)
	}
	m.log.Info("starting migration",
		zap.Uint64("from", m.cfg.StartHeight),
		zap.Uint64("to", top),
		zap.Bool("secure", m.cfg.Secure))

	for h := m.cfg.StartHeight; h <= top; h++ {
		if err := ctx.Err(); err != nil {
			return util.Uint256{}, fmt.Errorf("height %d: %w", h, err)
		}
		if err := m.migrateBlock(h, h == top); err != nil {
			return util.Uint256{}, fmt.Errorf("height %d: %w", h, err)
		}
	}
	root, err := m.persist(top)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("height %d: %w", top, err)
	}
	m.log.Info("migration finished",
		zap.Uint64("height", top),
		zap.Uint64("accounts", m.accounts.Load()),
		zap.Stringer("root", root))
	return root, nil
}

func (m *Migrator) migrateBlock(h uint64, last bool) error {
	root, err := m.legacy.Blocks.StateRootAt(h)
	if err != nil {
		return err
	}
	if !m.started || root != m.prevRoot {
		orchid, err := mpt.NewTrie(m.legacyNodes, true).GetSnapshotTo(root)
		if err != nil {
			return fmt.Errorf("legacy state: %w", err)
		}
		partial, removed, err := m.buildPartial(orchid)
		if err != nil {
			return err
		}
		tr := m.trie
		for _, k := range removed {
			if tr, err = tr.DeleteRecursive(k); err != nil {
				return err
			}
		}
		if m.trie, err = tr.Overlay(partial); err != nil {
			return err
		}
		m.started, m.prevRoot = true, root
	}
	m.height.Store(h)
	updateMigratedHeightMetric(h)

	if m.cfg.PersistInterval != 0 && h%m.cfg.PersistInterval == 0 && !last {
		if _, err := m.persist(h); err != nil {
			return err
		}
	}
	if last || (m.cfg.VerifyInterval != 0 && h%m.cfg.VerifyInterval == 0) {
		if err := m.verify(h, root); err != nil {
			return err
		}
	}
	if m.cfg.LogInterval != 0 && h%m.cfg.LogInterval == 0 {
		m.log.Info("block migrated",
			zap.Uint64("height", h),
			zap.Uint64("accounts", m.accounts.Load()),
			zap.Stringer("legacy root", root))
	}
	return nil
}

// buildPartial converts changed accounts of the legacy trie. It returns a
// trie with converted accounts and keys of accounts to be removed from the
// current state before the partial trie is merged into it.
func (m *Migrator) buildPartial(orchid *mpt.Trie) (*mpt.Trie, [][]byte, error) {
	repo := repository.New(mpt.NewTrie(mpt.NewTrieStore(storage.NewMemoryStore(), mpt.Unitrie), m.cfg.Secure), m.log)
	seen := make(map[util.Uint256]struct{}, len(m.leaves))
	var removed [][]byte

	it := orchid.Iterator(mpt.PreOrder)
	for it.Next() {
		n := it.Node()
		if !n.HasValue() || len(it.Path()) != accountPathBits {
			continue
		}
		addrHash, _ := util.Uint256DecodeBytesBE(it.Key())
		vh := leafValueHash(n)
		seen[addrHash] = struct{}{}
		prev, existed := m.leaves[addrHash]
		if existed && prev == vh {
			skippedAccounts.Inc()
			continue
		}
		addr, ok := m.addresses[addrHash]
		if !ok {
			return nil, nil, fmt.Errorf("%w: unknown address hash %s", mpt.ErrPrecondition, addrHash.StringBE())
		}
		if existed {
			removed = append(removed, repository.AccountKey(addr, m.cfg.Secure))
		}
		v, err := it.Value()
		if err != nil {
			return nil, nil, err
		}
		if err := m.migrateAccount(repo, addr, v); err != nil {
			return nil, nil, fmt.Errorf("account %s: %w", addr.StringBE(), err)
		}
		m.leaves[addrHash] = vh
	}
	if err := it.Err(); err != nil {
		return nil, nil, fmt.Errorf("legacy state: %w", err)
	}
	for h := range m.leaves {
		if _, ok := seen[h]; !ok {
			removed = append(removed, repository.AccountKey(m.addresses[h], m.cfg.Secure))
			delete(m.leaves, h)
		}
	}
	return repo.Trie(), removed, nil
}

func leafValueHash(n *mpt.Node) util.Uint256 {
	switch v := n.Value().(type) {
	case *mpt.HashedValue:
		return v.Hash
	case mpt.InlineValue:
		return hash.Keccak256(v)
	}
	return hash.EmptyKeccak
}

func (m *Migrator) migrateAccount(repo *repository.Repository, addr util.Uint160, data []byte) error {
	la, err := state.DecodeLegacyAccount(data)
	if err != nil {
		return err
	}
	if err := repo.UpdateAccountState(addr, la.Account()); err != nil {
		return err
	}

	d, err := m.details(addr)
	if err != nil {
		return err
	}
	if la.StorageRoot != hash.EmptyTrieHash {
		if d == nil {
			return fmt.Errorf("%w: no details for storage %s", mpt.ErrMissingReference, la.StorageRoot.StringBE())
		}
		if err := m.migrateStorage(repo, addr, d, la.StorageRoot); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}

	var code []byte
	if d != nil {
		code = d.Code
	}
	if hash.Keccak256(code) != la.CodeHash {
		code, err = m.legacy.Contracts.Get(la.CodeHash.BytesBE())
		if errors.Is(err, storage.ErrKeyNotFound) {
			return fmt.Errorf("%w: code %s", mpt.ErrMissingReference, la.CodeHash.StringBE())
		}
		if err != nil {
			return err
		}
	}
	if len(code) != 0 {
		if err := repo.SaveCode(addr, code); err != nil {
			return err
		}
	}
	migratedAccounts.Inc()
	m.accounts.Inc()
	return nil
}

func (m *Migrator) details(addr util.Uint160) (*Details, error) {
	data, err := m.legacy.Details.Get(addr.BytesBE())
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeDetails(data)
}

func (m *Migrator) migrateStorage(repo *repository.Repository, addr util.Uint160, d *Details, root util.Uint256) error {
	st, err := m.storageTrie(d)
	if err != nil {
		return err
	}
	if st, err = st.GetSnapshotTo(root); err != nil {
		return err
	}
	var initialized bool
	for _, k := range d.Keys {
		h := hash.Keccak256(k)
		v, err := st.Get(h[:])
		if errors.Is(err, mpt.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if !initialized {
			if err := repo.SetupContract(addr); err != nil {
				return err
			}
			initialized = true
		}
		if err := repo.AddStorageBytes(addr, storageWord(k), v); err != nil {
			return err
		}
		migratedCells.Inc()
	}
	return nil
}

func (m *Migrator) storageTrie(d *Details) (*mpt.Trie, error) {
	if !d.External {
		if st, ok := m.blobs.Get(d.Address); ok {
			return st.(*mpt.Trie), nil
		}
		st, err := DecodeStorageBlob(d.Storage)
		if err != nil {
			return nil, err
		}
		m.blobs.Add(d.Address, st)
		return st, nil
	}
	ts, ok := m.dedicated[d.Address]
	if !ok {
		if m.legacy.DetailsStorage == nil {
			return nil, fmt.Errorf("%w: no dedicated storage for %s", mpt.ErrMissingReference, d.Address.StringBE())
		}
		s, err := m.legacy.DetailsStorage(d.Address)
		if err != nil {
			return nil, err
		}
		ts = mpt.NewTrieStore(s, mpt.Orchid)
		m.dedicated[d.Address] = ts
	}
	return mpt.NewTrie(ts, true), nil
}

func (m *Migrator) verify(h uint64, legacyRoot util.Uint256) error {
	got, err := OrchidRoot(m.trie)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}
	verifiedRoots.Inc()
	m.log.Info("state root check",
		zap.Uint64("height", h),
		zap.Stringer("legacy", legacyRoot),
		zap.Stringer("converted", got),
		zap.Stringer("unitrie", m.trie.Hash()))
	if got != legacyRoot {
		return fmt.Errorf("%w: legacy %s, converted %s", ErrRootMismatch, legacyRoot.StringBE(), got.StringBE())
	}
	return nil
}

// persist saves the trie and flushes the destination store, the migrated
// height and state root are stored along with nodes.
func (m *Migrator) persist(h uint64) (util.Uint256, error) {
	if err := m.trie.Save(); err != nil {
		return util.Uint256{}, err
	}
	root := m.trie.Hash()
	buf := make([]byte, 8+util.Uint256Size)
	binary.BigEndian.PutUint64(buf, h)
	copy(buf[8:], root[:])
	if err := m.dest.Put(storage.SYSMigrationHeight.Bytes(), buf); err != nil {
		return util.Uint256{}, err
	}
	n, err := m.dest.Persist()
	if err != nil {
		return util.Uint256{}, err
	}
	m.log.Debug("state persisted", zap.Uint64("height", h), zap.Int("keys", n))
	return root, nil
}

// Progress returns the last persisted migration height and Unitrie root
// from the destination store.
func Progress(s storage.Store) (uint64, util.Uint256, error) {
	data, err := s.Get(storage.SYSMigrationHeight.Bytes())
	if err != nil {
		return 0, util.Uint256{}, err
	}
	if len(data) != 8+util.Uint256Size {
		return 0, util.Uint256{}, fmt.Errorf("%w: bad migration record length %d", mpt.ErrSerialization, len(data))
	}
	var root util.Uint256
	copy(root[:], data[8:])
	return binary.BigEndian.Uint64(data), root, nil
}
