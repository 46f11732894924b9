package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/algorithm_service/internal/config"
	"github.com/R3E-Network/algorithm_service/internal/platform/migrations"
)

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured SQL store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver := c.cfg.Storage.Driver
			if driver == config.DriverMemory {
				return fmt.Errorf("migrate requires STORAGE_DRIVER=%s or %s", config.DriverPostgres, config.DriverSQLite)
			}
			if err := migrations.Apply(cmd.Context(), driver, c.cfg.Storage.DSN); err != nil {
				return err
			}
			c.log.WithField("driver", driver).Info("migrations applied")
			cmd.Println("migrations applied")
			return nil
		},
	}
}
