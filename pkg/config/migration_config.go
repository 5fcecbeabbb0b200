package config

import (
	"errors"

	"github.com/nspcc-dev/unitrie/pkg/util"
)

// Migration contains legacy state migration settings.
type Migration struct {
	// LegacyPath is a directory of the legacy node database.
	LegacyPath  string `yaml:"LegacyPath"`
	StartHeight uint64 `yaml:"StartHeight"`
	// VerifyInterval is the number of blocks between converted state root
	// checks, zero means only the last block is checked.
	VerifyInterval  uint64 `yaml:"VerifyInterval"`
	LogInterval     uint64 `yaml:"LogInterval"`
	PersistInterval uint64 `yaml:"PersistInterval"`
	CacheSize       int    `yaml:"CacheSize"`
	Secure          bool   `yaml:"Secure"`
	// ExtraAddresses are addresses of accounts without contract details,
	// REMASC addresses are always included.
	ExtraAddresses []util.Uint160 `yaml:"ExtraAddresses"`
}

// Validate checks migration settings.
func (m Migration) Validate() error {
	if m.CacheSize < 0 {
		return errors.New("negative CacheSize")
	}
	return nil
}
