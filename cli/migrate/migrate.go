/*
Package migrate contains commands converting legacy state into a Unitrie and
inspecting the result.
*/
package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/unitrie/cli/cmdargs"
	"github.com/nspcc-dev/unitrie/cli/flags"
	"github.com/nspcc-dev/unitrie/cli/options"
	"github.com/nspcc-dev/unitrie/pkg/config"
	"github.com/nspcc-dev/unitrie/pkg/core/storage"
	"github.com/nspcc-dev/unitrie/pkg/core/storage/dbconfig"
	"github.com/nspcc-dev/unitrie/pkg/migration"
	"github.com/nspcc-dev/unitrie/pkg/migration/legacy"
	"github.com/nspcc-dev/unitrie/pkg/services/metrics"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// NewCommands returns 'migrate', 'progress' and 'dump' commands.
func NewCommands() []cli.Command {
	cfgFlags := []cli.Flag{options.ConfigFile, options.Debug}
	readFlags := append([]cli.Flag{
		cli.StringFlag{
			Name:  "db",
			Usage: "Unitrie LevelDB directory (overrides configuration)",
		},
	}, cfgFlags...)
	migrateFlags := append([]cli.Flag{
		cli.StringFlag{
			Name:  "legacy, l",
			Usage: "legacy node database directory (overrides configuration)",
		},
		cli.StringFlag{
			Name:  "dest",
			Usage: "destination LevelDB directory (overrides configuration)",
		},
		cli.Uint64Flag{
			Name:  "start, s",
			Usage: "first block to convert (overrides configuration)",
		},
		cli.BoolFlag{
			Name:  "plain-keys",
			Usage: "use raw addresses instead of their hashes in account keys",
		},
		cli.GenericFlag{
			Name:  "extra-address",
			Usage: "comma-separated addresses of accounts without contract details",
			Value: new(flags.Addresses),
		},
	}, cfgFlags...)
	dumpFlags := append([]cli.Flag{
		cli.StringFlag{
			Name:  "root, r",
			Usage: "Unitrie root to dump (last migrated root by default)",
		},
	}, readFlags...)
	return []cli.Command{
		{
			Name:      "migrate",
			Usage:     "convert legacy account state into a Unitrie",
			UsageText: "unitrie migrate [--legacy <dir>] [--dest <dir>] [--start <height>] [--config-file <file>]",
			Action:    migrate,
			Flags:     migrateFlags,
		},
		{
			Name:      "progress",
			Usage:     "print the last migrated height and Unitrie root",
			UsageText: "unitrie progress [--db <dir>] [--config-file <file>]",
			Action:    progress,
			Flags:     readFlags,
		},
		{
			Name:      "dump",
			Usage:     "dump Unitrie accounts as JSON",
			UsageText: "unitrie dump [--db <dir>] [--root <hash>] [--config-file <file>]",
			Action:    dump,
			Flags:     dumpFlags,
		},
	}
}

// loadConfig reads configuration and builds the logger for the command.
func loadConfig(ctx *cli.Context) (config.Config, *zap.Logger, error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return config.Config{}, nil, cli.NewExitError(err, 1)
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return config.Config{}, nil, cli.NewExitError(err, 1)
	}
	return cfg, log, nil
}

// dbConfig returns the Unitrie DB configuration, a directory given with the
// flag replaces the configured one.
func dbConfig(ctx *cli.Context, flag string, cfg config.Config, readOnly bool) dbconfig.DBConfiguration {
	dir := ctx.String(flag)
	if len(dir) == 0 {
		return cfg.ApplicationConfiguration.DBConfiguration
	}
	return dbconfig.DBConfiguration{
		Type: dbconfig.LevelDB,
		LevelDBOptions: dbconfig.LevelDBOptions{
			DataDirectoryPath: dir,
			ReadOnly:          readOnly,
		},
	}
}

func migrate(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	mcfg := cfg.Migration
	if ctx.IsSet("legacy") {
		mcfg.LegacyPath = ctx.String("legacy")
	}
	if ctx.IsSet("start") {
		mcfg.StartHeight = ctx.Uint64("start")
	}
	if ctx.Bool("plain-keys") {
		mcfg.Secure = false
	}
	if extra, ok := ctx.Generic("extra-address").(*flags.Addresses); ok {
		mcfg.ExtraAddresses = append(mcfg.ExtraAddresses, extra.Value...)
	}
	if len(mcfg.LegacyPath) == 0 {
		return cli.NewExitError(errors.New("no legacy database specified"), 1)
	}

	destCfg := dbConfig(ctx, "dest", cfg, false)
	if destCfg.Type == dbconfig.InMemoryDB {
		return cli.NewExitError(errors.New("in-memory destination database can't keep migrated state, use --dest or configure a persistent DB"), 1)
	}

	db, err := legacy.Open(mcfg.LegacyPath, true)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to open legacy database: %w", err), 1)
	}
	defer func() { _ = db.Close() }()

	dest, err := storage.NewStore(destCfg)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to open destination database: %w", err), 1)
	}
	defer func() { _ = dest.Close() }()

	prometheus := metrics.NewPrometheusService(cfg.ApplicationConfiguration.Prometheus, log)
	pprof := metrics.NewPprofService(cfg.ApplicationConfiguration.Pprof, log)
	for _, s := range []*metrics.Service{prometheus, pprof} {
		if err := s.Start(); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer s.ShutDown()
	}

	m, err := migration.New(db.Legacy(), dest, migration.Config{
		StartHeight:     mcfg.StartHeight,
		VerifyInterval:  mcfg.VerifyInterval,
		LogInterval:     mcfg.LogInterval,
		PersistInterval: mcfg.PersistInterval,
		CacheSize:       mcfg.CacheSize,
		Secure:          mcfg.Secure,
		ExtraAddresses:  append(slices.Clone(migration.DefaultExtraAddresses), mcfg.ExtraAddresses...),
	}, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	grace, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	root, err := m.Run(grace)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("migration failed: %w", err), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "height: %d\nroot: 0x%s\n", m.Height(), root.StringBE())
	return nil
}

func progress(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	cfg, log, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dest, err := storage.NewStore(dbConfig(ctx, "db", cfg, true))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = dest.Close() }()

	h, root, err := migration.Progress(dest)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			err = errors.New("no migrated state found")
		}
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "height: %d\nroot: 0x%s\n", h, root.StringBE())
	return nil
}
