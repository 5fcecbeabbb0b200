package flags

import (
	"flag"
	"strings"

	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Addresses is a list of account addresses with flag.Value methods, every
// flag occurrence adds one or more comma-separated addresses.
type Addresses struct {
	Value []util.Uint160
}

var _ flag.Value = (*Addresses)(nil)

// String implements the fmt.Stringer interface.
func (a *Addresses) String() string {
	res := make([]string, len(a.Value))
	for i := range a.Value {
		res[i] = "0x" + a.Value[i].StringBE()
	}
	return strings.Join(res, ",")
}

// Set implements the flag.Value interface.
func (a *Addresses) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		addr, err := ParseAddress(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		a.Value = append(a.Value, addr)
	}
	return nil
}

// ParseAddress parses a Uint160 from a BE hex string with optional 0x prefix.
func ParseAddress(s string) (util.Uint160, error) {
	return util.Uint160DecodeStringBE(s)
}
