package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msundar/receipt-processor/internal/config"
	"github.com/msundar/receipt-processor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts receipts for scoring and serves computed points by receipt id.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Ruleset: cfg.Ruleset,
	})

	return srv.Start()
}
