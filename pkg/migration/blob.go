package migration

import (
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/core/mpt"
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/io"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// blobVersion is written into both version fields of serialized storage.
const blobVersion = 1

// DecodeStorageBlob decodes contract storage embedded into a legacy details
// record. The blob is a root hash followed by the serialized key-value store
// holding trie nodes, the resulting trie is backed by an in-memory copy of
// this store.
func DecodeStorageBlob(data []byte) (*mpt.Trie, error) {
	r := io.NewBinReaderFromBuf(data)
	_ = r.ReadU16BE()
	var root util.Uint256
	r.ReadBytes(root[:])
	if r.Err != nil {
		return nil, fmt.Errorf("%w: storage blob header: %v", mpt.ErrSerialization, r.Err)
	}

	mem := storage.NewMemoryStore()
	if err := decodeStore(r, mem); err != nil {
		return nil, err
	}
	tr, err := mpt.NewTrie(mpt.NewTrieStore(mem, mpt.Orchid), true).GetSnapshotTo(root)
	if err != nil {
		return nil, fmt.Errorf("embedded storage: %w", err)
	}
	return tr, nil
}

func decodeStore(r *io.BinReader, s storage.Store) error {
	_ = r.ReadU16BE()
	n := r.ReadU32BE()
	for i := uint32(0); i < n && r.Err == nil; i++ {
		k := r.ReadU32Bytes()
		v := r.ReadU32Bytes()
		if r.Err != nil {
			break
		}
		if err := s.Put(k, v); err != nil {
			return err
		}
	}
	if r.Err != nil {
		return fmt.Errorf("%w: storage blob at %d: %v", mpt.ErrSerialization, r.Pos(), r.Err)
	}
	return nil
}

// EncodeStorageBlob serializes the trie root and all entries of the store
// in the legacy embedded storage format, entries go in key order.
func EncodeStorageBlob(root util.Uint256, s storage.Store) ([]byte, error) {
	var kvs []storage.KeyValue
	s.Seek(storage.SeekRange{}, func(k, v []byte) bool {
		kvs = append(kvs, storage.KeyValue{
			Key:   append([]byte{}, k...),
			Value: append([]byte{}, v...),
		})
		return true
	})

	w := io.NewBufBinWriter()
	w.WriteU16BE(blobVersion)
	w.WriteBytes(root[:])
	w.WriteU16BE(blobVersion)
	w.WriteU32BE(uint32(len(kvs)))
	for _, kv := range kvs {
		w.WriteU32Bytes(kv.Key)
		w.WriteU32Bytes(kv.Value)
	}
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}
