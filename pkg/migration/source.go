package migration

import (
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

//go:generate mockgen -source source.go -destination source_mocks.go -package migration

// BlockSource provides legacy block state roots.
type BlockSource interface {
	// Height returns the height of the latest block.
	Height() (uint64, error)
	// StateRootAt returns the legacy account trie root of the block.
	StateRootAt(h uint64) (util.Uint256, error)
}

// Legacy is a set of stores of a legacy node database.
type Legacy struct {
	// State holds legacy account trie nodes.
	State storage.Store
	// Details holds contract details records keyed by address.
	Details storage.Store
	// Contracts holds contract code keyed by code hash.
	Contracts storage.Store
	// DetailsStorage returns the dedicated storage of the contract, it's
	// only used for contracts with external storage.
	DetailsStorage func(util.Uint160) (storage.Store, error)
	Blocks         BlockSource
}
