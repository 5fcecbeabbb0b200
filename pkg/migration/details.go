package migration

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/nspcc-dev/unitrie/pkg/core/mpt"
	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Well-known REMASC addresses. Legacy details of the REMASC contract refer
// to it with a single zero byte instead of the address.
var (
	RemascAddress = util.Uint160{16: 0x01, 19: 0x08}
	ZeroAddress   = util.Uint160{}
)

// Details is a legacy contract details record.
type Details struct {
	// Address is the contract storage owner.
	Address util.Uint160
	// External is set when storage lives in the dedicated per-contract
	// store, Storage is a root hash then. Otherwise Storage is an embedded
	// storage blob.
	External bool
	Storage  []byte
	Code     []byte
	// Keys are raw storage keys ever written by the contract.
	Keys [][]byte
}

// DecodeDetails decodes RLP list of [address, external, storage, code,
// keys].
func DecodeDetails(data []byte) (*Details, error) {
	list, _, err := rlp.SplitList(data)
	if err != nil {
		return nil, fmt.Errorf("%w: details: %v", mpt.ErrSerialization, err)
	}
	var fields [4][]byte
	for i := range fields {
		fields[i], list, err = rlp.SplitString(list)
		if err != nil {
			return nil, fmt.Errorf("%w: details field %d: %v", mpt.ErrSerialization, i, err)
		}
	}
	keys, _, err := rlp.SplitList(list)
	if err != nil {
		return nil, fmt.Errorf("%w: details keys: %v", mpt.ErrSerialization, err)
	}

	d := &Details{
		External: len(fields[1]) > 0 && fields[1][0] == 1,
		Storage:  fields[2],
	}
	switch {
	case len(fields[0]) == 1 && fields[0][0] == 0:
		d.Address = RemascAddress
	case len(fields[0]) == util.Uint160Size:
		copy(d.Address[:], fields[0])
	default:
		return nil, fmt.Errorf("%w: details address of %d bytes", mpt.ErrSerialization, len(fields[0]))
	}
	if len(fields[3]) > 0 {
		d.Code = fields[3]
	}
	for len(keys) > 0 {
		var k []byte
		k, keys, err = rlp.SplitString(keys)
		if err != nil {
			return nil, fmt.Errorf("%w: details key %d: %v", mpt.ErrSerialization, len(d.Keys), err)
		}
		if len(k) > util.Uint256Size {
			return nil, fmt.Errorf("%w: storage key of %d bytes", mpt.ErrSerialization, len(k))
		}
		d.Keys = append(d.Keys, k)
	}
	return d, nil
}

// storageWord left-pads the raw key to a storage word.
func storageWord(k []byte) util.Uint256 {
	var w util.Uint256
	copy(w[util.Uint256Size-len(k):], k)
	return w
}
