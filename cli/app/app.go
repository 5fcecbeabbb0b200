package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/unitrie/cli/migrate"
	"github.com/nspcc-dev/unitrie/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "Unitrie\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a Unitrie instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "unitrie"
	ctl.Version = config.Version
	ctl.Usage = "Legacy state to Unitrie migration tool"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, migrate.NewCommands()...)
	return ctl
}
