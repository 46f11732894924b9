package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/algorithm_service/internal/app/runtime"
	"github.com/R3E-Network/algorithm_service/internal/logging"
)

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logging.Close(c.log) }()

	application, err := runtime.NewApplication(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}

	runErr := application.Run(ctx)
	if runErr == nil {
		c.log.Info("shutting down")
	}

	// The parent context is already cancelled at this point.
	shutdownErr := application.Shutdown(context.Background())
	return errors.Join(runErr, shutdownErr)
}
