package mpt

import (
	"bytes"

	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/nspcc-dev/unitrie/pkg/util/slice"
)

// GetProof returns a proof that key belongs to t. Proof consists of
// serialized nodes occurring on path from the root to the node of key, each
// node storing its value by hash is followed by the value contents.
func (t *Trie) GetProof(key []byte) ([][]byte, error) {
	var (
		proof [][]byte
		path  = toBits(key)
		n     = t.root
	)
	for n != nil {
		if !bytes.HasPrefix(path, n.path) {
			break
		}
		proof = append(proof, slice.Copy(n.Bytes()))
		if hv, ok := n.value.(*HashedValue); ok {
			v, err := t.valueBytes(hv)
			if err != nil {
				return nil, err
			}
			proof = append(proof, v)
		}
		path = path[len(n.path):]
		if len(path) == 0 {
			if n.value == nil {
				break
			}
			return proof, nil
		}
		next, err := t.resolve(n.children[path[0]])
		if err != nil {
			return nil, err
		}
		n, path = next, path[1:]
	}
	return nil, ErrNotFound
}

// VerifyProof verifies that key indeed belongs to a trie with the specified
// root hash. It also returns value for the key.
func VerifyProof(rh util.Uint256, key []byte, proofs [][]byte) ([]byte, bool) {
	st := NewTrieStore(storage.NewMemoryStore(), Unitrie)
	for i := range proofs {
		h := hash.Keccak256(proofs[i])
		// No errors in Put to memory store.
		_ = st.store.Put(Unitrie.NodeKey(h), proofs[i])
		_ = st.store.Put(Unitrie.ValueKey(h), proofs[i])
	}
	tr, err := NewTrie(st, false).GetSnapshotTo(rh)
	if err != nil {
		return nil, false
	}
	v, err := tr.Get(key)
	return v, err == nil
}
