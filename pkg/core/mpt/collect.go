package mpt

// CollectKeys returns all keys of exactly size bytes in ascending order.
// Subtries with longer paths are not loaded.
func (t *Trie) CollectKeys(size int) ([][]byte, error) {
	var res [][]byte
	if t.root == nil {
		return res, nil
	}
	err := t.collect(t.root, t.root.path, size*8, &res)
	return res, err
}

func (t *Trie) collect(n *Node, path []byte, bits int, res *[][]byte) error {
	if len(path) > bits {
		return nil
	}
	if len(path) == bits {
		if n.value != nil {
			*res = append(*res, fromBits(path))
		}
		return nil
	}
	for i := range n.children {
		child, err := t.resolve(n.children[i])
		if err != nil {
			return err
		}
		if child == nil {
			continue
		}
		err = t.collect(child, concatPath(path, byte(i), child.path), bits, res)
		if err != nil {
			return err
		}
	}
	return nil
}
