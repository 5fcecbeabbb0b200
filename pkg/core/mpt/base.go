package mpt

import (
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// BaseNode implements basic things every node needs like caching hash and
// serialized representation. Nodes are never changed after creation, so
// cached values never need to be invalidated.
type BaseNode struct {
	hash       util.Uint256
	bytes      []byte
	hashValid  bool
	bytesValid bool

	isFlushed bool
}

// setCache stores the representation and the hash the node was retrieved
// by, such a node is persisted by definition.
func (b *BaseNode) setCache(bs []byte, h util.Uint256) {
	b.bytes = bs
	b.hash = h
	b.bytesValid = true
	b.hashValid = true
	b.isFlushed = true
}

// copyCache makes dst share already computed hash and bytes of b. It's only
// valid for nodes with the same contents, flush status is not copied.
func (b *BaseNode) copyCache(dst *BaseNode) {
	dst.hash, dst.hashValid = b.hash, b.hashValid
	dst.bytes, dst.bytesValid = b.bytes, b.bytesValid
}

// getHash returns a hash of this BaseNode.
func (b *BaseNode) getHash(n *Node) util.Uint256 {
	if !b.hashValid {
		b.hash = hash.Keccak256(b.getBytes(n))
		b.hashValid = true
	}
	return b.hash
}

// getBytes returns a slice of bytes representing this node.
func (b *BaseNode) getBytes(n *Node) []byte {
	if !b.bytesValid {
		b.bytes = EncodeNode(n)
		b.bytesValid = true
	}
	return b.bytes
}

// IsFlushed checks for node flush status.
func (b *BaseNode) IsFlushed() bool {
	return b.isFlushed
}

// SetFlushed sets 'flushed' flag to true for this node.
func (b *BaseNode) SetFlushed() {
	b.isFlushed = true
}
