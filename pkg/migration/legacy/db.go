package legacy

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/core/storage/dbconfig"
	"github.com/nspcc-dev/unitrie/pkg/migration"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Legacy database layout, every store is a separate LevelDB directory.
const (
	StateDir          = "state"
	DetailsDir        = "details"
	ContractsDir      = "contracts-storage"
	DetailsStorageDir = "details-storage"
	RootsDir          = "roots"
)

// DB is an opened legacy node database.
type DB struct {
	dir      string
	readOnly bool

	State     storage.Store
	Details   storage.Store
	Contracts storage.Store
	Roots     *RootIndex

	roots     storage.Store
	lock      sync.Mutex
	dedicated map[util.Uint160]storage.Store
}

// Open opens legacy stores found in dir. Dedicated contract stores are
// opened on demand.
func Open(dir string, readOnly bool) (*DB, error) {
	db := &DB{
		dir:       dir,
		readOnly:  readOnly,
		dedicated: make(map[util.Uint160]storage.Store),
	}
	for _, s := range []struct {
		name string
		dst  *storage.Store
	}{
		{StateDir, &db.State},
		{DetailsDir, &db.Details},
		{ContractsDir, &db.Contracts},
		{RootsDir, &db.roots},
	} {
		st, err := db.open(s.name)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		*s.dst = st
	}
	db.Roots = NewRootIndex(db.roots)
	return db, nil
}

func (db *DB) open(name string) (storage.Store, error) {
	st, err := storage.NewLevelDBStore(dbconfig.LevelDBOptions{
		DataDirectoryPath: filepath.Join(db.dir, name),
		ReadOnly:          db.readOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return st, nil
}

// DetailsStorage returns the dedicated storage of the contract.
func (db *DB) DetailsStorage(addr util.Uint160) (storage.Store, error) {
	db.lock.Lock()
	defer db.lock.Unlock()
	if st, ok := db.dedicated[addr]; ok {
		return st, nil
	}
	st, err := db.open(filepath.Join(DetailsStorageDir, addr.StringBE()))
	if err != nil {
		return nil, err
	}
	db.dedicated[addr] = st
	return st, nil
}

// Legacy returns the set of stores used by the migrator.
func (db *DB) Legacy() migration.Legacy {
	return migration.Legacy{
		State:          db.State,
		Details:        db.Details,
		Contracts:      db.Contracts,
		DetailsStorage: db.DetailsStorage,
		Blocks:         db.Roots,
	}
}

// Close closes all opened stores.
func (db *DB) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()
	var errs []error
	for _, st := range []storage.Store{db.State, db.Details, db.Contracts, db.roots} {
		if st != nil {
			errs = append(errs, st.Close())
		}
	}
	for addr, st := range db.dedicated {
		errs = append(errs, st.Close())
		delete(db.dedicated, addr)
	}
	return errors.Join(errs...)
}
