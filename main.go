package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/christian-harsana/music-sheet-catalog-back-end/cmd/serve"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := conf.Load()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logging.Init(settings.LogLevel)

	rootCmd := &cobra.Command{
		Use:   "sheet-catalog",
		Short: "Multi-tenant REST backend for a personal sheet music library",
		// Running without a subcommand starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve.Run(settings)
		},
	}
	rootCmd.AddCommand(serve.Command(settings))

	return rootCmd.Execute()
}
