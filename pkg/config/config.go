package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nspcc-dev/unitrie/pkg/core/storage/dbconfig"
	"gopkg.in/yaml.v3"
)

// Default migration settings.
const (
	DefaultStartHeight     = 1
	DefaultVerifyInterval  = 1000
	DefaultLogInterval     = 100
	DefaultPersistInterval = 1000
	DefaultCacheSize       = 100000
)

// Version is the version of the tool, set at build time.
var Version string

// Config is the top level configuration structure.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
	Migration                Migration                `yaml:"Migration"`
}

// Default returns configuration with all defaults applied: in-memory
// destination DB, info logging and hashed account keys.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			LogLevel: "info",
			DBConfiguration: dbconfig.DBConfiguration{
				Type: dbconfig.InMemoryDB,
			},
		},
		Migration: Migration{
			StartHeight:     DefaultStartHeight,
			VerifyInterval:  DefaultVerifyInterval,
			LogInterval:     DefaultLogInterval,
			PersistInterval: DefaultPersistInterval,
			CacheSize:       DefaultCacheSize,
			Secure:          true,
		},
	}
}

// LoadFile loads config from the provided path. Settings that are not
// present in the file keep default values, unknown settings are an error.
func LoadFile(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist", configPath)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks configuration consistency.
func (c Config) Validate() error {
	return c.Migration.Validate()
}
