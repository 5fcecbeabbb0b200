package mpt

import (
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// ref is a reference to a child node. Persisted children are referenced by
// hash only and are resolved through the store, fresh children created by
// Put also keep a pointer to the in-memory node until the trie is saved.
type ref struct {
	hash util.Uint256
	node *Node
}

func hashRef(h util.Uint256) *ref {
	return &ref{hash: h}
}

func nodeRef(n *Node) *ref {
	return &ref{node: n}
}

// Hash returns the hash of the referenced node.
func (r *ref) Hash() util.Uint256 {
	if r.node != nil {
		return r.node.Hash()
	}
	return r.hash
}
