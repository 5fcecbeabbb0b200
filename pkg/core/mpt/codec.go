package mpt

import (
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/io"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

const (
	flagSecure    = 1 << 0
	flagLongValue = 1 << 1

	headerSize = 6
)

// EncodeNode returns the canonical serialization of the node:
//
//	[arity:1][flags:1][childBitmap:2][sharedPathLen:2][encodedPath][childHash:32]...[value or valueHash]
//
// Both current and legacy (Orchid) nodes share this layout.
func EncodeNode(n *Node) []byte {
	var (
		flags  byte
		bitmap uint16
		w      = io.NewBufBinWriter()
	)
	w.Grow(headerSize + encodedPathLength(len(n.path)) + Arity*util.Uint256Size + util.Uint256Size)
	if n.secure {
		flags |= flagSecure
	}
	if _, ok := n.value.(*HashedValue); ok {
		flags |= flagLongValue
	}
	for i := range n.children {
		if n.children[i] != nil {
			bitmap |= 1 << i
		}
	}
	w.WriteB(Arity)
	w.WriteB(flags)
	w.WriteU16BE(bitmap)
	w.WriteU16BE(uint16(len(n.path)))
	if len(n.path) > 0 {
		w.WriteBytes(fromBits(n.path))
	}
	for i := range n.children {
		if n.children[i] != nil {
			h := n.children[i].Hash()
			w.WriteBytes(h[:])
		}
	}
	switch v := n.value.(type) {
	case InlineValue:
		w.WriteBytes(v)
	case *HashedValue:
		w.WriteBytes(v.Hash[:])
	}
	return w.Bytes()
}

// DecodeNode decodes a node in the current format. Unknown flags, children
// beyond the arity and trailing bytes after the value hash are rejected.
func DecodeNode(data []byte) (*Node, error) {
	return decodeNode(data, true)
}

// DecodeLegacyNode decodes a node of the legacy (Orchid) trie. It accepts
// anything the old reader did: unknown flag and bitmap bits are ignored, as
// well as any bytes following the long value hash.
func DecodeLegacyNode(data []byte) (*Node, error) {
	return decodeNode(data, false)
}

func decodeNode(data []byte, strict bool) (*Node, error) {
	r := io.NewBinReaderFromBuf(data)
	arity := r.ReadB()
	flags := r.ReadB()
	bitmap := r.ReadU16BE()
	pathLen := int(r.ReadU16BE())
	if r.Err != nil {
		return nil, fmt.Errorf("%w: truncated header: %v", ErrSerialization, r.Err)
	}
	if arity != Arity {
		return nil, fmt.Errorf("%w: invalid arity %d", ErrSerialization, arity)
	}
	if strict {
		if flags&^(flagSecure|flagLongValue) != 0 {
			return nil, fmt.Errorf("%w: unknown flags %x", ErrSerialization, flags)
		}
		if bitmap>>Arity != 0 {
			return nil, fmt.Errorf("%w: invalid child bitmap %x", ErrSerialization, bitmap)
		}
	}

	n := &Node{secure: flags&flagSecure != 0}
	if pathLen > 0 {
		enc := r.ReadN(encodedPathLength(pathLen))
		if r.Err != nil {
			return nil, fmt.Errorf("%w: truncated shared path of %d bits", ErrSerialization, pathLen)
		}
		n.path = decodePath(enc, pathLen)
	}
	for i := 0; i < Arity; i++ {
		if bitmap&(1<<i) == 0 {
			continue
		}
		var h util.Uint256
		r.ReadBytes(h[:])
		if r.Err != nil {
			return nil, fmt.Errorf("%w: truncated child %d hash", ErrSerialization, i)
		}
		n.children[i] = hashRef(h)
	}
	if flags&flagLongValue != 0 {
		if strict && r.Len() != util.Uint256Size {
			return nil, fmt.Errorf("%w: invalid value hash length %d", ErrSerialization, r.Len())
		}
		hv := new(HashedValue)
		r.ReadBytes(hv.Hash[:])
		if r.Err != nil {
			return nil, fmt.Errorf("%w: truncated value hash", ErrSerialization)
		}
		n.value = hv
	} else if r.Len() > 0 {
		n.value = InlineValue(r.ReadRest())
	}
	return n, nil
}
