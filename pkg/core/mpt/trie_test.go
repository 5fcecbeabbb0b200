package mpt

import (
	"bytes"
	"sort"
	"testing"

	"github.com/nspcc-dev/unitrie/internal/random"
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/crypto/hash"
	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/stretchr/testify/require"
)

type kv struct {
	key, value []byte
}

func newTestStore() *TrieStore {
	return NewTrieStore(storage.NewMemoryStore(), Unitrie)
}

func newTestTrie(t *testing.T, items ...kv) *Trie {
	tr := NewTrie(newTestStore(), false)
	return putAll(t, tr, items...)
}

func putAll(t *testing.T, tr *Trie, items ...kv) *Trie {
	var err error
	for _, it := range items {
		tr, err = tr.Put(it.key, it.value)
		require.NoError(t, err)
	}
	return tr
}

func (tr *Trie) testHas(t *testing.T, key, value []byte) {
	v, err := tr.Get(key)
	if value == nil {
		require.ErrorIs(t, err, ErrNotFound)
		return
	}
	require.NoError(t, err)
	require.Equal(t, value, v)
}

// isValid checks that every node without a value has two children.
func isValid(t *testing.T, tr *Trie) bool {
	it := tr.Iterator(PreOrder)
	for it.Next() {
		n := it.Node()
		if !n.HasValue() && n.ChildrenCount() < 2 {
			return false
		}
	}
	require.NoError(t, it.Err())
	return true
}

func TestTrie_Empty(t *testing.T) {
	tr := NewTrie(newTestStore(), false)
	require.True(t, tr.IsEmpty())
	require.Nil(t, tr.Root())
	require.Equal(t, (&Node{}).Hash(), tr.Hash())
	require.Equal(t, tr.Hash(), tr.StateRoot())
	require.NoError(t, tr.Save())

	sec := NewTrie(newTestStore(), true)
	require.Equal(t, (&Node{secure: true}).Hash(), sec.Hash())
	require.NotEqual(t, tr.Hash(), sec.Hash())

	orchid := NewTrie(NewTrieStore(storage.NewMemoryStore(), Orchid), true)
	require.Equal(t, hash.EmptyTrieHash, orchid.Hash())

	_, err := tr.Get([]byte{1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTrie_PutGet(t *testing.T) {
	items := []kv{
		{[]byte{0x12, 0x34}, []byte("first")},
		{[]byte{0x12, 0x35}, []byte("second")},
		{[]byte{0x12}, []byte("prefix")},
		{[]byte{0xff, 0x00, 0x01}, []byte("third")},
		{[]byte{}, []byte("root")},
	}
	tr := newTestTrie(t, items...)
	for _, it := range items {
		tr.testHas(t, it.key, it.value)
	}
	tr.testHas(t, []byte{0x13}, nil)
	tr.testHas(t, []byte{0x12, 0x34, 0x56}, nil)
	tr.testHas(t, []byte{0xff}, nil)
	require.True(t, isValid(t, tr))

	t.Run("Overwrite", func(t *testing.T) {
		tr2, err := tr.Put([]byte{0x12, 0x34}, []byte("new"))
		require.NoError(t, err)
		tr2.testHas(t, []byte{0x12, 0x34}, []byte("new"))
		tr.testHas(t, []byte{0x12, 0x34}, []byte("first"))
		require.NotEqual(t, tr.Hash(), tr2.Hash())
	})
	t.Run("SameValue", func(t *testing.T) {
		tr2, err := tr.Put([]byte{0x12, 0x35}, []byte("second"))
		require.NoError(t, err)
		require.True(t, tr == tr2)
	})
	t.Run("TooBigKey", func(t *testing.T) {
		_, err := tr.Put(make([]byte, MaxKeyLength+1), []byte{1})
		require.ErrorIs(t, err, ErrPrecondition)
	})
}

func TestTrie_Immutability(t *testing.T) {
	tr1 := newTestTrie(t, kv{[]byte{1}, []byte{1}})
	h1 := tr1.Hash()
	tr2, err := tr1.Put([]byte{2}, []byte{2})
	require.NoError(t, err)
	tr3, err := tr2.Delete([]byte{1})
	require.NoError(t, err)

	tr1.testHas(t, []byte{2}, nil)
	tr1.testHas(t, []byte{1}, []byte{1})
	tr2.testHas(t, []byte{1}, []byte{1})
	tr3.testHas(t, []byte{1}, nil)
	tr3.testHas(t, []byte{2}, []byte{2})
	require.Equal(t, h1, tr1.Hash())
}

func TestTrie_OrderIndependence(t *testing.T) {
	const count = 100
	var (
		items = make([]kv, 0, count)
		seen  = make(map[string]bool)
	)
	for len(items) < count {
		k := random.Bytes(random.Int(1, 10))
		if seen[string(k)] {
			continue
		}
		seen[string(k)] = true
		items = append(items, kv{k, random.Bytes(random.Int(1, 50))})
	}
	expected := newTestTrie(t, items...)

	for i := 0; i < 5; i++ {
		shuffled := make([]kv, count)
		for j, p := range random.Perm(count) {
			shuffled[j] = items[p]
		}
		tr := newTestTrie(t, shuffled...)
		require.Equal(t, expected.Hash(), tr.Hash())
	}
	require.True(t, isValid(t, expected))
}

func TestTrie_Delete(t *testing.T) {
	a := kv{[]byte{0x01, 0x02}, []byte("a")}
	b := kv{[]byte{0x01, 0x03}, []byte("b")}
	c := kv{[]byte{0x01}, []byte("c")}

	t.Run("Leaf", func(t *testing.T) {
		tr := newTestTrie(t, a, b)
		tr, err := tr.Delete(b.key)
		require.NoError(t, err)
		require.Equal(t, newTestTrie(t, a).Hash(), tr.Hash())
		require.True(t, isValid(t, tr))
	})
	t.Run("Inner", func(t *testing.T) {
		tr := newTestTrie(t, a, b, c)
		tr, err := tr.Delete(c.key)
		require.NoError(t, err)
		require.Equal(t, newTestTrie(t, a, b).Hash(), tr.Hash())
		tr.testHas(t, a.key, a.value)
		tr.testHas(t, b.key, b.value)
	})
	t.Run("Collapse", func(t *testing.T) {
		tr := newTestTrie(t, a, b, c)
		tr, err := tr.Delete(a.key)
		require.NoError(t, err)
		tr, err = tr.Delete(b.key)
		require.NoError(t, err)
		require.Equal(t, newTestTrie(t, c).Hash(), tr.Hash())
		require.True(t, isValid(t, tr))
	})
	t.Run("All", func(t *testing.T) {
		tr := newTestTrie(t, a, b, c)
		var err error
		for _, k := range [][]byte{b.key, c.key, a.key} {
			tr, err = tr.Delete(k)
			require.NoError(t, err)
		}
		require.True(t, tr.IsEmpty())
		require.Equal(t, NewTrie(newTestStore(), false).Hash(), tr.Hash())
	})
	t.Run("Missing", func(t *testing.T) {
		tr := newTestTrie(t, a, b)
		for _, k := range [][]byte{c.key, {0x01, 0x02, 0x03}, {0x02}} {
			tr2, err := tr.Delete(k)
			require.NoError(t, err)
			require.True(t, tr == tr2)
		}
	})
	t.Run("EmptyValue", func(t *testing.T) {
		tr := newTestTrie(t, a, b)
		tr, err := tr.Put(a.key, []byte{})
		require.NoError(t, err)
		tr.testHas(t, a.key, nil)
		require.Equal(t, newTestTrie(t, b).Hash(), tr.Hash())
	})
}

func TestTrie_DeleteRecursive(t *testing.T) {
	items := []kv{
		{[]byte{0x01, 0x01, 0x01}, []byte("a")},
		{[]byte{0x01, 0x01, 0x02}, []byte("b")},
		{[]byte{0x01, 0x02}, []byte("c")},
		{[]byte{0x01}, []byte("d")},
		{[]byte{0x02}, []byte("e")},
	}
	tr := newTestTrie(t, items...)

	t.Run("Subtrie", func(t *testing.T) {
		res, err := tr.DeleteRecursive([]byte{0x01, 0x01})
		require.NoError(t, err)
		require.Equal(t, newTestTrie(t, items[2:]...).Hash(), res.Hash())
		require.True(t, isValid(t, res))
	})
	t.Run("WithValue", func(t *testing.T) {
		res, err := tr.DeleteRecursive([]byte{0x01})
		require.NoError(t, err)
		require.Equal(t, newTestTrie(t, items[4]).Hash(), res.Hash())
	})
	t.Run("InsideSharedPath", func(t *testing.T) {
		tr := newTestTrie(t, items[:2]...)
		res, err := tr.DeleteRecursive([]byte{0x01})
		require.NoError(t, err)
		require.True(t, res.IsEmpty())
	})
	t.Run("Missing", func(t *testing.T) {
		res, err := tr.DeleteRecursive([]byte{0x03})
		require.NoError(t, err)
		require.True(t, tr == res)
		res, err = tr.DeleteRecursive([]byte{0x01, 0x01, 0x03})
		require.NoError(t, err)
		require.True(t, tr == res)
	})
	t.Run("Everything", func(t *testing.T) {
		res, err := tr.DeleteRecursive(nil)
		require.NoError(t, err)
		require.True(t, res.IsEmpty())
	})
}

func TestTrie_LongValue(t *testing.T) {
	key := []byte{0xAB, 0xCD}
	value := random.Bytes(100)
	tr := newTestTrie(t, kv{key, value}, kv{[]byte{0xAB}, []byte{1}})

	tr.testHas(t, key, value)
	l, err := tr.GetValueLength(key)
	require.NoError(t, err)
	require.Equal(t, 100, l)
	h, err := tr.GetValueHash(key)
	require.NoError(t, err)
	require.Equal(t, hash.Keccak256(value), h)

	require.NoError(t, tr.Save())
	restored, err := NewTrie(tr.Store(), false).GetSnapshotTo(tr.Hash())
	require.NoError(t, err)
	restored.testHas(t, key, value)
	l, err = restored.GetValueLength(key)
	require.NoError(t, err)
	require.Equal(t, 100, l)

	_, err = restored.GetValueLength([]byte{0xAC})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = restored.GetValueHash([]byte{0xAC})
	require.ErrorIs(t, err, ErrNotFound)

	t.Run("SameLongValue", func(t *testing.T) {
		same, err := restored.Put(key, bytes.Clone(value))
		require.NoError(t, err)
		require.True(t, same == restored)
	})
}

func TestTrie_SaveAndSnapshot(t *testing.T) {
	items := []kv{
		{[]byte{0x00}, []byte("zero")},
		{[]byte{0x80}, []byte("one")},
		{[]byte{0x80, 0x01}, random.Bytes(40)},
	}
	tr := newTestTrie(t, items...)
	st := tr.Store().(*TrieStore)
	mem := st.Storage().(*storage.MemoryStore)

	require.False(t, tr.Root().IsFlushed())
	require.NoError(t, tr.Save())
	require.True(t, tr.Root().IsFlushed())
	// Root, two children, one grandchild and a long value.
	require.Equal(t, 5, mem.Len())
	require.NoError(t, tr.Save())
	require.Equal(t, 5, mem.Len())

	t.Run("Restore", func(t *testing.T) {
		restored, err := NewTrie(st, false).GetSnapshotTo(tr.Hash())
		require.NoError(t, err)
		require.Equal(t, tr.Hash(), restored.Hash())
		for _, it := range items {
			restored.testHas(t, it.key, it.value)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		restored, err := tr.GetSnapshotTo(NewTrie(st, false).Hash())
		require.NoError(t, err)
		require.True(t, restored.IsEmpty())
	})
	t.Run("Unknown", func(t *testing.T) {
		_, err := tr.GetSnapshotTo(random.Uint256())
		require.ErrorIs(t, err, ErrMissingReference)
	})
	t.Run("MissingNode", func(t *testing.T) {
		h, ok := tr.Root().Child(0)
		require.True(t, ok)
		require.NoError(t, mem.Delete(Unitrie.NodeKey(h)))

		restored, err := NewTrie(st, false).GetSnapshotTo(tr.Hash())
		require.NoError(t, err)
		_, err = restored.Get([]byte{0x00})
		require.ErrorIs(t, err, ErrMissingReference)
		restored.testHas(t, []byte{0x80}, []byte("one"))

		it := restored.Iterator(PreOrder)
		require.True(t, it.Next())
		require.False(t, it.Next())
		require.ErrorIs(t, it.Err(), ErrMissingReference)
	})
}

func TestTrie_OrchidStore(t *testing.T) {
	mem := storage.NewMemoryStore()
	tr := NewTrie(NewTrieStore(mem, Orchid), true)
	tr, err := tr.Put(random.Bytes(32), random.Bytes(64))
	require.NoError(t, err)
	require.True(t, tr.Root().Secure())
	require.NoError(t, tr.Save())

	h := tr.Hash()
	data, err := mem.Get(h.BytesBE())
	require.NoError(t, err)
	require.Equal(t, tr.Root().Bytes(), data)
	hv, ok := tr.Root().Value().(*HashedValue)
	require.True(t, ok)
	_, err = mem.Get(hv.Hash.BytesBE())
	require.NoError(t, err)
}

func TestTrie_Find(t *testing.T) {
	items := []kv{
		{[]byte{0x01}, []byte("x")},
		{[]byte{0x01, 0x02}, []byte("a")},
		{[]byte{0x01, 0x83}, []byte("b")},
		{[]byte{0x02}, []byte("c")},
	}
	tr := newTestTrie(t, items...)

	sub, err := tr.Find([]byte{0x01})
	require.NoError(t, err)
	require.True(t, sub.Root().HasValue())
	require.Equal(t, InlineValue("x"), sub.Root().Value())
	require.Equal(t, 2, sub.Root().ChildrenCount())
	require.NotEqual(t, tr.Hash(), sub.Hash())

	tr2 := newTestTrie(t, append(items, kv{[]byte{0x03}, []byte("d")})...)
	sub2, err := tr2.Find([]byte{0x01})
	require.NoError(t, err)
	require.Equal(t, sub.Hash(), sub2.Hash())

	_, err = tr.Find([]byte{0x03})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = tr.Find([]byte{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = NewTrie(newTestStore(), false).Find([]byte{0x01})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTrie_CollectKeys(t *testing.T) {
	tr := newTestTrie(t,
		kv{[]byte{0x01}, []byte{1}},
		kv{[]byte{0x01, 0x02}, []byte{2}},
		kv{[]byte{0x03, 0x04}, []byte{3}},
		kv{[]byte{0x00, 0xff}, []byte{4}},
		kv{[]byte{0x05, 0x06, 0x07}, []byte{5}},
	)
	keys, err := tr.CollectKeys(2)
	require.NoError(t, err)
	require.Equal(t, [][]byte{{0x00, 0xff}, {0x01, 0x02}, {0x03, 0x04}}, keys)

	keys, err = tr.CollectKeys(1)
	require.NoError(t, err)
	require.Equal(t, [][]byte{{0x01}}, keys)

	keys, err = tr.CollectKeys(4)
	require.NoError(t, err)
	require.Empty(t, keys)

	keys, err = NewTrie(newTestStore(), false).CollectKeys(2)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestTrie_CollectKeysRandom(t *testing.T) {
	var (
		items    []kv
		expected [][]byte
	)
	for i := 0; i < 50; i++ {
		k := random.Bytes(21)
		items = append(items, kv{k, []byte{1}})
		expected = append(expected, k)
		items = append(items, kv{append(bytes.Clone(k), 0x80), random.Bytes(40)})
	}
	sort.Slice(expected, func(i, j int) bool {
		return bytes.Compare(expected[i], expected[j]) < 0
	})
	tr := newTestTrie(t, items...)
	require.NoError(t, tr.Save())
	tr, err := NewTrie(tr.Store(), false).GetSnapshotTo(tr.Hash())
	require.NoError(t, err)

	keys, err := tr.CollectKeys(21)
	require.NoError(t, err)
	require.Equal(t, expected, keys)
}

func TestCachedStore(t *testing.T) {
	inner := newTestStore()
	_, err := NewCachedStore(inner, 0)
	require.Error(t, err)

	cs, err := NewCachedStore(inner, 10)
	require.NoError(t, err)
	require.Equal(t, Unitrie, cs.Format())

	value := random.Bytes(50)
	tr := NewTrie(cs, false)
	tr = putAll(t, tr, kv{[]byte{0x00}, []byte{1}}, kv{[]byte{0x80}, value})
	require.NoError(t, tr.Save())
	require.Equal(t, 3, cs.Len())

	t.Run("Fresh", func(t *testing.T) {
		cs2, err := NewCachedStore(inner, 10)
		require.NoError(t, err)
		n, err := cs2.Retrieve(tr.Hash())
		require.NoError(t, err)
		require.Equal(t, tr.Hash(), n.Hash())
		hits, misses := cs2.Stats()
		require.Equal(t, uint64(0), hits)
		require.Equal(t, uint64(1), misses)

		_, err = cs2.Retrieve(tr.Hash())
		require.NoError(t, err)
		hits, misses = cs2.Stats()
		require.Equal(t, uint64(1), hits)
		require.Equal(t, uint64(1), misses)

		n, err = cs2.Retrieve(random.Uint256())
		require.NoError(t, err)
		require.Nil(t, n)
		_, misses = cs2.Stats()
		require.Equal(t, uint64(2), misses)

		_, err = cs2.RetrieveValue(random.Uint256())
		require.ErrorIs(t, err, ErrMissingReference)
	})
	t.Run("WriteThrough", func(t *testing.T) {
		restored, err := NewTrie(cs, false).GetSnapshotTo(tr.Hash())
		require.NoError(t, err)
		restored.testHas(t, []byte{0x80}, value)
		restored.testHas(t, []byte{0x00}, []byte{1})
		hits, misses := cs.Stats()
		require.Equal(t, uint64(0), misses)
		require.NotZero(t, hits)

		v, err := inner.RetrieveValue(hash.Keccak256(value))
		require.NoError(t, err)
		require.Equal(t, value, v)
	})
}

func TestTrie_Secure(t *testing.T) {
	key := hash.Keccak256([]byte("key"))
	tr := NewTrie(newTestStore(), true)
	tr, err := tr.Put(key.BytesBE(), []byte("value"))
	require.NoError(t, err)
	require.True(t, tr.Secure())
	require.Equal(t, byte(flagSecure), tr.Root().Bytes()[1])

	plain := newTestTrie(t, kv{key.BytesBE(), []byte("value")})
	require.NotEqual(t, plain.Hash(), tr.Hash())
	require.Equal(t, util.Uint256Size*8, len(tr.Root().Path()))
}

func TestTrie_StructuralSharing(t *testing.T) {
	tr := newTestTrie(t,
		kv{[]byte{0x00}, []byte("left")},
		kv{[]byte{0x80}, []byte("a")},
		kv{[]byte{0x81}, []byte("b")},
	)
	tr2, err := tr.Put([]byte{0x82}, []byte("c"))
	require.NoError(t, err)

	require.Same(t, tr.Root().children[0], tr2.Root().children[0])
	h1, ok := tr.Root().Child(0)
	require.True(t, ok)
	h2, ok := tr2.Root().Child(0)
	require.True(t, ok)
	require.Equal(t, h1, h2)

	h1, _ = tr.Root().Child(1)
	h2, _ = tr2.Root().Child(1)
	require.NotEqual(t, h1, h2)
	tr.testHas(t, []byte{0x82}, nil)
}

func TestTrie_SnapshotMode(t *testing.T) {
	st := newTestStore()
	plain := putAll(t, NewTrie(st, false), kv{[]byte{0x01}, []byte{1}})
	require.NoError(t, plain.Save())
	sec := putAll(t, NewTrie(st, true), kv{[]byte{0x01}, []byte{1}})
	require.NoError(t, sec.Save())

	restored, err := NewTrie(st, true).GetSnapshotTo(plain.Hash())
	require.NoError(t, err)
	require.False(t, restored.Secure())
	restored, err = NewTrie(st, false).GetSnapshotTo(sec.Hash())
	require.NoError(t, err)
	require.True(t, restored.Secure())

	empty, err := NewTrie(st, true).GetSnapshotTo(Unitrie.EmptyHash(false))
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
	require.False(t, empty.Secure())
	require.Equal(t, Unitrie.EmptyHash(false), empty.Hash())
}
