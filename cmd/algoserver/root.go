package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/R3E-Network/algorithm_service/internal/config"
	"github.com/R3E-Network/algorithm_service/internal/logging"
)

// cli carries state shared between the root command and its children.
type cli struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "algoserver",
		Short: "Algorithm and user directory HTTP service",
		Long: `algoserver exposes searching, sorting and number sequence algorithms
together with a small user directory over HTTP.

Run without a subcommand to start the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Close(c.log)
		},
		RunE: c.runServe,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (default: $CONFIG_FILE)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(c.newServeCmd())
	root.AddCommand(c.newMigrateCmd())
	root.AddCommand(c.newComputeCmd())
	return root
}

func (c *cli) init() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.cfg = cfg
	c.log = log
	return nil
}
