package mpt

import (
	"bytes"

	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/nspcc-dev/unitrie/pkg/util/slice"
)

const (
	// Arity is the number of children every node has slots for.
	Arity = 2
	// MaxInlineValueSize is the maximum length of a value stored inside the
	// node itself, longer values are stored separately by their hash.
	MaxInlineValueSize = 32
	// MaxKeyLength is the maximum key length in bytes, shared path length
	// must fit into two bytes.
	MaxKeyLength = 0xffff / 8
)

// Value is a value stored in a trie node. It's either InlineValue or
// *HashedValue.
type Value interface {
	// Len returns the length of the value in bytes.
	Len() int
	isValue()
}

// InlineValue is a short value stored right in the node.
type InlineValue []byte

// HashedValue is a long value stored separately by its hash.
type HashedValue struct {
	Hash   util.Uint256
	Length int

	// data is only present for values that were not retrieved from a store.
	data []byte
}

// Len implements Value interface.
func (v InlineValue) Len() int { return len(v) }

func (InlineValue) isValue() {}

// Len implements Value interface.
func (v *HashedValue) Len() int { return v.Length }

func (*HashedValue) isValue() {}

// NewValue creates a value of the proper kind for b, it returns nil for an
// empty slice.
func NewValue(b []byte) Value {
	switch {
	case len(b) == 0:
		return nil
	case len(b) > MaxInlineValueSize:
		return &HashedValue{
			Hash:   hash.Keccak256(b),
			Length: len(b),
			data:   slice.Copy(b),
		}
	default:
		return InlineValue(slice.Copy(b))
	}
}

// valueHash returns a hash of the value contents.
func valueHash(v Value) util.Uint256 {
	switch v := v.(type) {
	case InlineValue:
		return hash.Keccak256(v)
	case *HashedValue:
		return v.Hash
	}
	return hash.EmptyKeccak
}

func valuesEqual(a, b Value) bool {
	switch va := a.(type) {
	case nil:
		return b == nil
	case InlineValue:
		vb, ok := b.(InlineValue)
		return ok && bytes.Equal(va, vb)
	case *HashedValue:
		vb, ok := b.(*HashedValue)
		return ok && va.Hash == vb.Hash
	}
	return false
}

// Node is a single node of a binary radix trie. It has a shared path
// compressing the common part of all keys below it, two child slots and an
// optional value. Nodes are immutable, every change creates new nodes along
// the modified path.
type Node struct {
	BaseNode

	path     []byte
	children [Arity]*ref
	value    Value
	secure   bool
}

// Hash returns the Keccak-256 hash of the node serialization.
func (n *Node) Hash() util.Uint256 {
	return n.getHash(n)
}

// Bytes returns the canonical serialization of the node.
func (n *Node) Bytes() []byte {
	return n.getBytes(n)
}

// Path returns the node's shared path in bits. It must not be modified.
func (n *Node) Path() []byte {
	return n.path
}

// Value returns the node value, nil if there is none.
func (n *Node) Value() Value {
	return n.value
}

// HasValue checks whether the node has a value.
func (n *Node) HasValue() bool {
	return n.value != nil
}

// Secure returns the secure flag of the node.
func (n *Node) Secure() bool {
	return n.secure
}

// Child returns the hash of the i-th child and whether it's present.
func (n *Node) Child(i int) (util.Uint256, bool) {
	if n.children[i] == nil {
		return util.Uint256{}, false
	}
	return n.children[i].Hash(), true
}

// ChildrenCount returns the number of present children.
func (n *Node) ChildrenCount() int {
	var c int
	for i := range n.children {
		if n.children[i] != nil {
			c++
		}
	}
	return c
}

// IsEmpty checks whether the node has nothing at all, such node can only be
// a root of an empty trie.
func (n *Node) IsEmpty() bool {
	return len(n.path) == 0 && n.value == nil && n.ChildrenCount() == 0
}

func (n *Node) clone() *Node {
	return &Node{
		path:     n.path,
		children: n.children,
		value:    n.value,
		secure:   n.secure,
	}
}

func (n *Node) withPath(p []byte) *Node {
	res := n.clone()
	res.path = p
	return res
}

func (n *Node) withValue(v Value) *Node {
	res := n.clone()
	res.value = v
	return res
}

func (n *Node) withChild(i byte, c *Node) *Node {
	res := n.clone()
	if c == nil {
		res.children[i] = nil
	} else {
		res.children[i] = nodeRef(c)
	}
	return res
}
