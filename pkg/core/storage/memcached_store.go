package storage

import (
	"bytes"
	"sort"
)

// MemCachedStore is a wrapper around persistent store that caches all changes
// being made for them to be later flushed in one batch.
type MemCachedStore struct {
	MemoryStore

	// Persistent Store.
	ps Store
}

// NewMemCachedStore creates a new MemCachedStore object.
func NewMemCachedStore(lower Store) *MemCachedStore {
	return &MemCachedStore{
		MemoryStore: *NewMemoryStore(),
		ps:          lower,
	}
}

// Get implements the Store interface.
func (s *MemCachedStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	val, ok := s.mem[string(key)]
	s.mut.RUnlock()
	if ok {
		if val == nil {
			return nil, ErrKeyNotFound
		}
		return val, nil
	}
	return s.ps.Get(key)
}

// Delete implements the Store interface. The key is marked as deleted
// and the deletion is propagated to the lower store on Persist.
func (s *MemCachedStore) Delete(key []byte) error {
	s.mut.Lock()
	s.put(string(key), nil)
	s.mut.Unlock()
	return nil
}

// PutChangeSet implements the Store interface. Never returns an error.
func (s *MemCachedStore) PutChangeSet(puts map[string][]byte) error {
	s.mut.Lock()
	for k := range puts {
		s.put(k, puts[k])
	}
	s.mut.Unlock()
	return nil
}

// Seek implements the Store interface. Items of the memory layer shadow
// the ones of the persistent store.
func (s *MemCachedStore) Seek(rng SeekRange, f func(k, v []byte) bool) {
	s.mut.RLock()
	var res = make(map[string][]byte)
	s.MemoryStore.seek(rng, func(k, v []byte) bool {
		res[string(k)] = v
		return true
	})
	s.mut.RUnlock()
	s.ps.Seek(rng, func(k, v []byte) bool {
		if _, ok := res[string(k)]; !ok {
			res[string(k)] = bytes.Clone(v)
		}
		return true
	})

	var kvs = make([]KeyValue, 0, len(res))
	for k, v := range res {
		if v != nil {
			kvs = append(kvs, KeyValue{Key: []byte(k), Value: v})
		}
	}
	sort.Slice(kvs, func(i, j int) bool {
		res := bytes.Compare(kvs[i].Key, kvs[j].Key)
		return res != 0 && rng.Backwards == (res > 0)
	})
	for _, kv := range kvs {
		if !f(kv.Key, kv.Value) {
			break
		}
	}
}

// Persist flushes all the MemoryStore contents into the (supposedly) persistent
// store ps. It returns the number of keys flushed.
func (s *MemCachedStore) Persist() (int, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	keys := len(s.mem)
	if keys == 0 {
		return 0, nil
	}
	err := s.ps.PutChangeSet(s.mem)
	if err != nil {
		return 0, err
	}
	s.mem = make(map[string][]byte)
	return keys, nil
}

// Close implements Store interface, clears up memory and closes the lower layer
// Store.
func (s *MemCachedStore) Close() error {
	// It's always successful.
	_ = s.MemoryStore.Close()
	return s.ps.Close()
}
