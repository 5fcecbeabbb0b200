package mpt

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/nspcc-dev/unitrie/pkg/util/slice"
	"go.uber.org/atomic"
)

// DefaultCacheSize is the default number of nodes (and values) kept by
// CachedStore.
const DefaultCacheSize = 100000

// CachedStore is a write-through caching NodeStore decorator. It's safe for
// concurrent readers.
type CachedStore struct {
	inner  NodeStore
	nodes  *lru.Cache
	values *lru.Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ NodeStore = (*CachedStore)(nil)

// NewCachedStore wraps inner into a cache keeping up to size nodes and size
// long values.
func NewCachedStore(inner NodeStore, size int) (*CachedStore, error) {
	nodes, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("node cache: %w", err)
	}
	values, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("value cache: %w", err)
	}
	return &CachedStore{
		inner:  inner,
		nodes:  nodes,
		values: values,
	}, nil
}

// Format implements NodeStore interface.
func (s *CachedStore) Format() Format {
	return s.inner.Format()
}

// Save implements NodeStore interface. Cache is only updated after the inner
// store succeeds.
func (s *CachedStore) Save(n *Node) error {
	if err := s.inner.Save(n); err != nil {
		return err
	}
	s.nodes.Add(n.Hash(), n)
	if hv, ok := n.value.(*HashedValue); ok && hv.data != nil {
		s.values.Add(hv.Hash, hv.data)
	}
	return nil
}

// Retrieve implements NodeStore interface.
func (s *CachedStore) Retrieve(h util.Uint256) (*Node, error) {
	if n, ok := s.nodes.Get(h); ok {
		s.hits.Inc()
		return n.(*Node), nil
	}
	s.misses.Inc()
	n, err := s.inner.Retrieve(h)
	if err != nil || n == nil {
		return n, err
	}
	s.nodes.Add(h, n)
	return n, nil
}

// RetrieveValue implements NodeStore interface.
func (s *CachedStore) RetrieveValue(h util.Uint256) ([]byte, error) {
	if v, ok := s.values.Get(h); ok {
		s.hits.Inc()
		return slice.Copy(v.([]byte)), nil
	}
	s.misses.Inc()
	v, err := s.inner.RetrieveValue(h)
	if err != nil {
		return nil, err
	}
	s.values.Add(h, slice.Copy(v))
	return v, nil
}

// Stats returns the number of cache hits and misses.
func (s *CachedStore) Stats() (hits uint64, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// Len returns the number of cached nodes.
func (s *CachedStore) Len() int {
	return s.nodes.Len()
}
