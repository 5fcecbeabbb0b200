package mpt

import (
	"fmt"
)

// merger combines two tries. Nodes of the left side are resolved through
// the store of the receiver, nodes of the right side through the store of
// the other trie.
type merger struct {
	left, right *Trie
	overwrite   bool
}

// Add returns a union of t and other. Tries must be disjoint, any key (or
// subtrie) present in both of them is an error. Nodes of other are shared
// if both tries use the same store and copied into pending nodes of the
// result otherwise.
func (t *Trie) Add(other *Trie) (*Trie, error) {
	return t.merge(other, false)
}

// Overlay is the same as Add, but values of other replace values of t for
// keys present in both tries.
func (t *Trie) Overlay(other *Trie) (*Trie, error) {
	return t.merge(other, true)
}

func (t *Trie) merge(other *Trie, overwrite bool) (*Trie, error) {
	if other.root == nil {
		return t, nil
	}
	m := &merger{left: t, right: other, overwrite: overwrite}
	root, err := m.merge(t.root, other.root)
	if err != nil {
		return nil, err
	}
	if root == t.root {
		return t, nil
	}
	return t.withRoot(root), nil
}

func (m *merger) sameStore() bool {
	return m.left.store == m.right.store
}

func (m *merger) merge(a, b *Node) (*Node, error) {
	if b == nil {
		return a, nil
	}
	if a == nil {
		return m.adopt(b)
	}
	if a.Hash() == b.Hash() {
		if !m.overwrite {
			return nil, fmt.Errorf("%w: overlapping subtries %s", ErrPrecondition, a.Hash().StringBE())
		}
		return a, nil
	}

	common := lcp(a.path, b.path)
	switch {
	case common < len(a.path) && common < len(b.path):
		bb, err := m.adopt(b)
		if err != nil {
			return nil, err
		}
		res := &Node{
			path:   a.path[:common],
			secure: m.left.secure,
		}
		res.children[a.path[common]] = nodeRef(a.withPath(a.path[common+1:]))
		res.children[b.path[common]] = nodeRef(bb.withPath(b.path[common+1:]))
		return res, nil

	case common == len(a.path) && common == len(b.path):
		res := a.clone()
		if b.value != nil {
			if a.value != nil && !m.overwrite {
				return nil, fmt.Errorf("%w: both tries have a value at the same key", ErrPrecondition)
			}
			v, err := m.adoptValue(b.value)
			if err != nil {
				return nil, err
			}
			res.value = v
		}
		for i := range res.children {
			if b.children[i] == nil {
				continue
			}
			ac, err := m.left.resolve(a.children[i])
			if err != nil {
				return nil, err
			}
			bc, err := m.right.resolve(b.children[i])
			if err != nil {
				return nil, err
			}
			c, err := m.merge(ac, bc)
			if err != nil {
				return nil, err
			}
			res.children[i] = nodeRef(c)
		}
		return res, nil

	case common == len(a.path):
		i := b.path[common]
		ac, err := m.left.resolve(a.children[i])
		if err != nil {
			return nil, err
		}
		c, err := m.merge(ac, b.withPath(b.path[common+1:]))
		if err != nil {
			return nil, err
		}
		return a.withChild(i, c), nil

	default:
		i := a.path[common]
		bc, err := m.right.resolve(b.children[i])
		if err != nil {
			return nil, err
		}
		c, err := m.merge(a.withPath(a.path[common+1:]), bc)
		if err != nil {
			return nil, err
		}
		res := &Node{
			path:   b.path,
			secure: b.secure,
		}
		res.value, err = m.adoptValue(b.value)
		if err != nil {
			return nil, err
		}
		for j := range b.children {
			if j == int(i) {
				continue
			}
			res.children[j], err = m.adoptRef(b.children[j])
			if err != nil {
				return nil, err
			}
		}
		res.children[i] = nodeRef(c)
		return res, nil
	}
}

// adopt makes b usable from the left trie. Nodes from a different store
// are copied together with the whole subtrie and their long values.
func (m *merger) adopt(b *Node) (*Node, error) {
	if m.sameStore() {
		return b, nil
	}
	v, err := m.adoptValue(b.value)
	if err != nil {
		return nil, err
	}
	res := &Node{
		path:   b.path,
		value:  v,
		secure: b.secure,
	}
	for i := range b.children {
		res.children[i], err = m.adoptRef(b.children[i])
		if err != nil {
			return nil, err
		}
	}
	b.copyCache(&res.BaseNode)
	return res, nil
}

func (m *merger) adoptRef(r *ref) (*ref, error) {
	if r == nil || m.sameStore() {
		return r, nil
	}
	n, err := m.right.resolve(r)
	if err != nil {
		return nil, err
	}
	n, err = m.adopt(n)
	if err != nil {
		return nil, err
	}
	return nodeRef(n), nil
}

func (m *merger) adoptValue(v Value) (Value, error) {
	hv, ok := v.(*HashedValue)
	if !ok || hv.data != nil || m.sameStore() {
		return v, nil
	}
	data, err := m.right.store.RetrieveValue(hv.Hash)
	if err != nil {
		return nil, err
	}
	return &HashedValue{
		Hash:   hv.Hash,
		Length: len(data),
		data:   data,
	}, nil
}
