// Package main provides the entry point for the receipt processor HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "receipt-processor",
	Short: "Receipt Processor HTTP API Server",
	Long:  "Receipt Processor scores submitted receipts with a fixed rule set and serves the computed points back by id via a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
