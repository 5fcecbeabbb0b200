package mpt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/nspcc-dev/unitrie/pkg/util/slice"
)

var (
	// ErrNotFound is returned when requested trie item is missing.
	ErrNotFound = errors.New("item not found")
	// ErrSerialization is returned for malformed node or record bytes.
	ErrSerialization = errors.New("serialization error")
	// ErrMissingReference is returned when a node or a long value
	// referenced by hash is absent from the store.
	ErrMissingReference = errors.New("missing reference")
	// ErrPrecondition is returned when the caller violates operation
	// requirements.
	ErrPrecondition = errors.New("precondition violated")
)

// Trie is an immutable binary radix trie snapshot. Every modification
// returns a new Trie sharing all untouched nodes with the original one, so
// previous values stay valid. Trie values are not safe for concurrent
// modification of the same root, but different roots can be used from
// different goroutines if the store allows it.
type Trie struct {
	root   *Node
	store  NodeStore
	secure bool
}

// NewTrie returns an empty trie backed by store. Secure flag is put into
// every node created, keys are not hashed by the trie itself.
func NewTrie(store NodeStore, secure bool) *Trie {
	return &Trie{
		store:  store,
		secure: secure,
	}
}

func (t *Trie) withRoot(root *Node) *Trie {
	return t.withMode(root, t.secure)
}

func (t *Trie) withMode(root *Node, secure bool) *Trie {
	if root != nil && root.IsEmpty() {
		root = nil
	}
	return &Trie{
		root:   root,
		store:  t.store,
		secure: secure,
	}
}

// Store returns the node store of the trie.
func (t *Trie) Store() NodeStore {
	return t.store
}

// Secure returns the trie secure flag.
func (t *Trie) Secure() bool {
	return t.secure
}

// IsEmpty checks whether the trie has no keys.
func (t *Trie) IsEmpty() bool {
	return t.root == nil
}

// Root returns the root node, nil for an empty trie.
func (t *Trie) Root() *Node {
	return t.root
}

// Hash returns the root hash of the trie.
func (t *Trie) Hash() util.Uint256 {
	if t.root == nil {
		return t.store.Format().EmptyHash(t.secure)
	}
	return t.root.Hash()
}

// StateRoot is an alias for Hash.
func (t *Trie) StateRoot() util.Uint256 {
	return t.Hash()
}

// resolve returns the node referenced by r, nil for an absent child.
func (t *Trie) resolve(r *ref) (*Node, error) {
	if r == nil {
		return nil, nil
	}
	if r.node != nil {
		return r.node, nil
	}
	n, err := t.store.Retrieve(r.hash)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: node %s", ErrMissingReference, r.hash.StringBE())
	}
	return n, nil
}

// valueBytes returns a copy of the value contents.
func (t *Trie) valueBytes(v Value) ([]byte, error) {
	switch v := v.(type) {
	case InlineValue:
		return slice.Copy(v), nil
	case *HashedValue:
		if v.data != nil {
			return slice.Copy(v.data), nil
		}
		return t.store.RetrieveValue(v.Hash)
	}
	return nil, ErrNotFound
}

// findNode returns the node whose full path is exactly path, nil if there
// is no such node.
func (t *Trie) findNode(path []byte) (*Node, error) {
	n := t.root
	for n != nil {
		if !bytes.HasPrefix(path, n.path) {
			return nil, nil
		}
		path = path[len(n.path):]
		if len(path) == 0 {
			return n, nil
		}
		next, err := t.resolve(n.children[path[0]])
		if err != nil {
			return nil, err
		}
		n, path = next, path[1:]
	}
	return nil, nil
}

func (t *Trie) getValue(key []byte) (Value, error) {
	n, err := t.findNode(toBits(key))
	if err != nil {
		return nil, err
	}
	if n == nil || n.value == nil {
		return nil, ErrNotFound
	}
	return n.value, nil
}

// Get returns value for the provided key in t.
func (t *Trie) Get(key []byte) ([]byte, error) {
	v, err := t.getValue(key)
	if err != nil {
		return nil, err
	}
	return t.valueBytes(v)
}

// GetValueLength returns the length of the value stored under key.
func (t *Trie) GetValueLength(key []byte) (int, error) {
	v, err := t.getValue(key)
	if err != nil {
		return 0, err
	}
	return v.Len(), nil
}

// GetValueHash returns Keccak-256 hash of the value stored under key.
func (t *Trie) GetValueHash(key []byte) (util.Uint256, error) {
	v, err := t.getValue(key)
	if err != nil {
		return util.Uint256{}, err
	}
	return valueHash(v), nil
}

// Put returns a trie with value put under key. Empty value deletes the key.
func (t *Trie) Put(key, value []byte) (*Trie, error) {
	if len(key) > MaxKeyLength {
		return nil, fmt.Errorf("%w: key is too big (%d bytes)", ErrPrecondition, len(key))
	}
	var (
		root *Node
		err  error
		path = toBits(key)
	)
	if len(value) == 0 {
		root, err = t.deleteFromNode(t.root, path)
	} else {
		root, err = t.putIntoNode(t.root, path, NewValue(value))
	}
	if err != nil {
		return nil, err
	}
	if root == t.root {
		return t, nil
	}
	return t.withRoot(root), nil
}

// Delete returns a trie without key.
func (t *Trie) Delete(key []byte) (*Trie, error) {
	return t.Put(key, nil)
}

func (t *Trie) newLeaf(path []byte, v Value) *Node {
	return &Node{
		path:   path,
		value:  v,
		secure: t.secure,
	}
}

// putIntoNode puts v into the subtrie rooted at curr, returning the new
// subtrie root. curr is returned as is if nothing changes.
func (t *Trie) putIntoNode(curr *Node, path []byte, v Value) (*Node, error) {
	if curr == nil {
		return t.newLeaf(path, v), nil
	}
	common := lcp(curr.path, path)
	if common < len(curr.path) {
		// Split the shared path of curr.
		b := &Node{
			path:   curr.path[:common],
			secure: t.secure,
		}
		b.children[curr.path[common]] = nodeRef(curr.withPath(curr.path[common+1:]))
		if common == len(path) {
			b.value = v
		} else {
			b.children[path[common]] = nodeRef(t.newLeaf(path[common+1:], v))
		}
		return b, nil
	}
	path = path[common:]
	if len(path) == 0 {
		if valuesEqual(curr.value, v) {
			return curr, nil
		}
		return curr.withValue(v), nil
	}
	i := path[0]
	child, err := t.resolve(curr.children[i])
	if err != nil {
		return nil, err
	}
	r, err := t.putIntoNode(child, path[1:], v)
	if err != nil {
		return nil, err
	}
	if r == child {
		return curr, nil
	}
	return curr.withChild(i, r), nil
}

// deleteFromNode removes path from the subtrie rooted at curr. curr is
// returned as is if there is no such key.
func (t *Trie) deleteFromNode(curr *Node, path []byte) (*Node, error) {
	if curr == nil || !bytes.HasPrefix(path, curr.path) {
		return curr, nil
	}
	path = path[len(curr.path):]
	if len(path) == 0 {
		if curr.value == nil {
			return curr, nil
		}
		return t.normalize(curr.withValue(nil))
	}
	i := path[0]
	child, err := t.resolve(curr.children[i])
	if err != nil || child == nil {
		return curr, err
	}
	r, err := t.deleteFromNode(child, path[1:])
	if err != nil {
		return nil, err
	}
	if r == child {
		return curr, nil
	}
	return t.normalize(curr.withChild(i, r))
}

// normalize keeps the trie canonical: a node without a value has at least
// two children, otherwise it's removed or merged with its only child.
func (t *Trie) normalize(n *Node) (*Node, error) {
	if n.value != nil {
		return n, nil
	}
	switch n.ChildrenCount() {
	case 0:
		return nil, nil
	case 1:
		var i byte
		if n.children[0] == nil {
			i = 1
		}
		child, err := t.resolve(n.children[i])
		if err != nil {
			return nil, err
		}
		return child.withPath(concatPath(n.path, i, child.path)), nil
	default:
		return n, nil
	}
}

// DeleteRecursive returns a trie without every key starting with prefix.
func (t *Trie) DeleteRecursive(prefix []byte) (*Trie, error) {
	root, err := t.deleteRecursive(t.root, toBits(prefix))
	if err != nil {
		return nil, err
	}
	if root == t.root {
		return t, nil
	}
	return t.withRoot(root), nil
}

func (t *Trie) deleteRecursive(curr *Node, path []byte) (*Node, error) {
	if curr == nil {
		return nil, nil
	}
	if len(path) <= len(curr.path) {
		if bytes.HasPrefix(curr.path, path) {
			return nil, nil
		}
		return curr, nil
	}
	if !bytes.HasPrefix(path, curr.path) {
		return curr, nil
	}
	path = path[len(curr.path):]
	i := path[0]
	child, err := t.resolve(curr.children[i])
	if err != nil || child == nil {
		return curr, err
	}
	r, err := t.deleteRecursive(child, path[1:])
	if err != nil {
		return nil, err
	}
	if r == child {
		return curr, nil
	}
	return t.normalize(curr.withChild(i, r))
}

// Find returns a subtrie rooted at the node ending exactly at prefix. The
// root of the subtrie keeps its shared path, so keys of the subtrie are
// relative to the parent node of the found one.
func (t *Trie) Find(prefix []byte) (*Trie, error) {
	n, err := t.findNode(toBits(prefix))
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return t.withRoot(n), nil
}

// GetSnapshotTo returns a trie with the given root hash from the same store.
// Secure flag of the result is the one of the stored root node, so that
// snapshots of both plain and secure tries can be taken from any trie.
func (t *Trie) GetSnapshotTo(h util.Uint256) (*Trie, error) {
	f := t.store.Format()
	for _, secure := range []bool{t.secure, !t.secure} {
		if h == f.EmptyHash(secure) {
			return t.withMode(nil, secure), nil
		}
	}
	n, err := t.store.Retrieve(h)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: root %s", ErrMissingReference, h.StringBE())
	}
	return t.withMode(n, n.secure), nil
}

// Save persists all nodes that are not yet in the store.
func (t *Trie) Save() error {
	if t.root == nil {
		return nil
	}
	return t.save(t.root)
}

func (t *Trie) save(n *Node) error {
	if n.IsFlushed() {
		return nil
	}
	for _, c := range n.children {
		if c != nil && c.node != nil {
			if err := t.save(c.node); err != nil {
				return err
			}
		}
	}
	if err := t.store.Save(n); err != nil {
		return err
	}
	n.SetFlushed()
	return nil
}
