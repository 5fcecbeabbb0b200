/*
Package legacy provides access to legacy node databases.
*/
package legacy

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// currentHeightKey holds the height of the latest block.
var currentHeightKey = []byte("h")

// ErrNoBlock is returned for heights that are not in the index.
var ErrNoBlock = errors.New("no such block")

// RootIndex is a block state root index. Roots are stored under 8-byte
// big-endian heights.
type RootIndex struct {
	store storage.Store
}

// NewRootIndex creates an index on top of s.
func NewRootIndex(s storage.Store) *RootIndex {
	return &RootIndex{store: s}
}

func heightKey(h uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, h)
	return k
}

// Height returns the height of the latest block.
func (r *RootIndex) Height() (uint64, error) {
	v, err := r.store.Get(currentHeightKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return 0, fmt.Errorf("%w: empty root index", ErrNoBlock)
		}
		return 0, err
	}
	if len(v) != 8 {
		return 0, fmt.Errorf("bad height record of %d bytes", len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

// StateRootAt returns the state root of the block.
func (r *RootIndex) StateRootAt(h uint64) (util.Uint256, error) {
	v, err := r.store.Get(heightKey(h))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return util.Uint256{}, fmt.Errorf("%w: %d", ErrNoBlock, h)
		}
		return util.Uint256{}, err
	}
	return util.Uint256DecodeBytesBE(v)
}

// Add stores the root of the block, the current height is moved forward if
// needed.
func (r *RootIndex) Add(h uint64, root util.Uint256) error {
	puts := map[string][]byte{
		string(heightKey(h)): root.BytesBE(),
	}
	top, err := r.Height()
	if err != nil && !errors.Is(err, ErrNoBlock) {
		return err
	}
	if err != nil || h > top {
		puts[string(currentHeightKey)] = heightKey(h)
	}
	return r.store.PutChangeSet(puts)
}
