package config

import (
	"github.com/nspcc-dev/unitrie/pkg/core/storage/dbconfig"
)

// ApplicationConfiguration is a config specific to the running tool.
type ApplicationConfiguration struct {
	LogLevel string `yaml:"LogLevel"`
	LogPath  string `yaml:"LogPath"`
	// DBConfiguration is a destination Unitrie DB configuration.
	DBConfiguration dbconfig.DBConfiguration `yaml:"DBConfiguration"`
	Prometheus      BasicService             `yaml:"Prometheus"`
	Pprof           BasicService             `yaml:"Pprof"`
}
