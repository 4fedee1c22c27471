package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source"
	service "github.com/gilliangoud/gcpv-lynx-generator/internal/app"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/config"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
)

// cli holds what the persistent flags resolve to before a subcommand runs.
type cli struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
	fs  afero.Fs
}

func newRootCmd() *cobra.Command {
	c := &cli{fs: afero.NewOsFs()}

	rootCmd := &cobra.Command{
		Use:           "gcpv-lynx",
		Short:         "Export GCPV competitions to Lynx EVT and races.json",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (default $LYNX_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newExportCmd(c),
		newWatchCmd(c),
		newServeCmd(c),
		newFixtureCmd(c),
	)
	return rootCmd
}

// setup loads the config and initializes logging.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.log = logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log level, falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	return nil
}

// request builds the per-cycle request from the loaded config.
func (c *cli) request() service.Request {
	return service.Request{
		SourcePath:          c.cfg.SourcePath,
		EVTPath:             c.cfg.EVTPath(),
		JSONPath:            c.cfg.JSONPath(),
		CompetitionOverride: c.cfg.CompetitionID,
	}
}

// newService wires the table source chain and the export service.
func (c *cli) newService(req service.Request) (*service.Service, error) {
	strategies, err := source.Strategies(c.cfg.Strategies, source.Settings{
		MDBExportPath: c.cfg.MDBExportPath,
		SQLitePath:    c.cfg.SQLitePath,
		CSVDir:        c.cfg.CSVDir,
		FS:            c.fs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	chain := source.NewChain(strategies, source.WithLogger(c.log.Named("source")))

	return service.New(
		service.WithSource(chain),
		service.WithFS(c.fs),
		service.WithAffiliationURLTemplate(c.cfg.AffiliationURLTemplate),
		service.WithRequest(req),
		service.WithLogger(c.log.Named("service")),
	), nil
}
