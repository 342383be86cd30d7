// Package serve provides the command that runs the HTTP server.
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/httpcontroller"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the sheet catalog API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(settings)
		},
	}
}

// Run opens the datastore, starts the server and blocks until a termination
// signal arrives, then shuts down gracefully.
func Run(settings *conf.Settings) error {
	logger := logging.ForService("serve")

	ds := datastore.New(settings)
	if err := ds.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}

	tokens := security.NewTokenManager(settings.JWT.Secret, settings.JWT.ExpiresIn)
	server := httpcontroller.New(settings, ds, tokens)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if closeErr := ds.Close(); closeErr != nil {
			logger.Error("Failed to close datastore", "error", closeErr)
		}
		return err
	case sig := <-quit:
		logger.Info("Received shutdown signal", "signal", sig.String())
		return server.Shutdown()
	}
}
