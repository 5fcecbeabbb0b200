package mpt

import (
	"fmt"
)

// TraversalOrder is the order nodes are visited in by an Iterator.
type TraversalOrder byte

// Traversal orders. Child 0 is always visited before child 1.
const (
	// PreOrder yields a node before its children.
	PreOrder TraversalOrder = iota
	// InOrder yields a node between its left and right subtries.
	InOrder
	// PostOrder yields a node after its children.
	PostOrder
)

// String implements fmt.Stringer interface.
func (o TraversalOrder) String() string {
	switch o {
	case PreOrder:
		return "pre-order"
	case InOrder:
		return "in-order"
	case PostOrder:
		return "post-order"
	default:
		return fmt.Sprintf("order(%d)", byte(o))
	}
}

const (
	stageEnter = iota
	stageLeft
	stageSelf
	stageRight
	stageLeave
)

type frame struct {
	node  *Node
	path  []byte
	stage int
}

// Iterator walks the trie lazily, children are resolved from the store only
// when they're reached. Iterator is not safe for concurrent use.
//
//	it := tr.Iterator(mpt.PreOrder)
//	for it.Next() {
//		_ = it.Path()
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator struct {
	t     *Trie
	order TraversalOrder
	stack []frame

	node *Node
	path []byte
	err  error
}

// Iterator returns a new iterator over t positioned before the first node.
func (t *Trie) Iterator(order TraversalOrder) *Iterator {
	it := &Iterator{
		t:     t,
		order: order,
	}
	it.Reset()
	return it
}

// Reset moves the iterator back to the start.
func (it *Iterator) Reset() {
	it.stack = it.stack[:0]
	it.node, it.path, it.err = nil, nil, nil
	if it.t.root != nil {
		it.stack = append(it.stack, frame{node: it.t.root, path: it.t.root.path})
	}
}

// Next moves to the next node. It returns false when traversal is over or
// failed, see Err.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.stack) > 0 {
		top := len(it.stack) - 1
		f := it.stack[top]
		switch f.stage {
		case stageEnter:
			it.stack[top].stage = stageLeft
			if it.order == PreOrder {
				return it.emit(f)
			}
		case stageLeft:
			it.stack[top].stage = stageSelf
			if !it.push(f, 0) {
				return false
			}
		case stageSelf:
			it.stack[top].stage = stageRight
			if it.order == InOrder {
				return it.emit(f)
			}
		case stageRight:
			it.stack[top].stage = stageLeave
			if !it.push(f, 1) {
				return false
			}
		default:
			it.stack = it.stack[:top]
			if it.order == PostOrder {
				return it.emit(f)
			}
		}
	}
	it.node, it.path = nil, nil
	return false
}

func (it *Iterator) emit(f frame) bool {
	it.node, it.path = f.node, f.path
	return true
}

func (it *Iterator) push(f frame, i byte) bool {
	child, err := it.t.resolve(f.node.children[i])
	if err != nil {
		it.err = err
		it.node, it.path = nil, nil
		return false
	}
	if child != nil {
		it.stack = append(it.stack, frame{
			node: child,
			path: concatPath(f.path, i, child.path),
		})
	}
	return true
}

// Node returns the current node.
func (it *Iterator) Node() *Node {
	return it.node
}

// Path returns the full bit path of the current node, one byte per bit.
func (it *Iterator) Path() []byte {
	return it.path
}

// Key returns the key of the current node. It's only meaningful for nodes
// whose path is byte-aligned.
func (it *Iterator) Key() []byte {
	return fromBits(it.path)
}

// Value returns the value of the current node, nil if there is none.
func (it *Iterator) Value() ([]byte, error) {
	if it.node == nil || it.node.value == nil {
		return nil, nil
	}
	return it.t.valueBytes(it.node.value)
}

// Err returns an error that stopped the traversal.
func (it *Iterator) Err() error {
	return it.err
}
