package mpt

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/nspcc-dev/unitrie/pkg/util/slice"
)

// NodeStore is a content-addressed storage of trie nodes and long values.
type NodeStore interface {
	// Save persists the node and its long value if there is one.
	Save(*Node) error
	// Retrieve returns the node with the given hash, nil if there is no
	// such node. Absence is not an error.
	Retrieve(util.Uint256) (*Node, error)
	// RetrieveValue returns long value contents, it fails with
	// ErrMissingReference if there is no value with the given hash.
	RetrieveValue(util.Uint256) ([]byte, error)
	// Format returns the format of stored nodes.
	Format() Format
}

// TrieStore is a NodeStore working on top of a KV storage.
type TrieStore struct {
	store  storage.Store
	format Format
}

var _ NodeStore = (*TrieStore)(nil)

// NewTrieStore creates a node store of the given format.
func NewTrieStore(s storage.Store, f Format) *TrieStore {
	return &TrieStore{
		store:  s,
		format: f,
	}
}

// Format implements NodeStore interface.
func (s *TrieStore) Format() Format {
	return s.format
}

// Storage returns the underlying KV storage.
func (s *TrieStore) Storage() storage.Store {
	return s.store
}

// Save implements NodeStore interface. Value is written before the node, so
// that a stored node never references a missing value.
func (s *TrieStore) Save(n *Node) error {
	if hv, ok := n.value.(*HashedValue); ok && hv.data != nil {
		if err := s.store.Put(s.format.ValueKey(hv.Hash), hv.data); err != nil {
			return err
		}
	}
	return s.store.Put(s.format.NodeKey(n.Hash()), n.Bytes())
}

// Retrieve implements NodeStore interface. Long value of the node is
// resolved immediately to know its length.
func (s *TrieStore) Retrieve(h util.Uint256) (*Node, error) {
	data, err := s.store.Get(s.format.NodeKey(h))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	n, err := s.format.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", h.StringBE(), err)
	}
	if hv, ok := n.value.(*HashedValue); ok {
		v, err := s.RetrieveValue(hv.Hash)
		if err != nil {
			return nil, err
		}
		hv.Length = len(v)
	}
	n.setCache(slice.Copy(data), h)
	return n, nil
}

// RetrieveValue implements NodeStore interface.
func (s *TrieStore) RetrieveValue(h util.Uint256) ([]byte, error) {
	v, err := s.store.Get(s.format.ValueKey(h))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: value %s", ErrMissingReference, h.StringBE())
		}
		return nil, err
	}
	return slice.Copy(v), nil
}
