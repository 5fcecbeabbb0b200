/*
Package cmdargs contains helpers for parsing command line arguments and
flag values.
*/
package cmdargs

import (
	"fmt"

	"github.com/nspcc-dev/unitrie/pkg/util"
	"github.com/urfave/cli"
)

// EnsureNone returns an error if there are any positional arguments present.
// It can be used to check for them in commands that don't accept arguments.
func EnsureNone(ctx *cli.Context) *cli.ExitError {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	return nil
}

// ParseRoot parses a BE hex state root with optional 0x prefix.
func ParseRoot(s string) (util.Uint256, error) {
	u, err := util.Uint256DecodeStringBE(s)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("invalid root %q: %w", s, err)
	}
	return u, nil
}
