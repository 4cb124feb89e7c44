// Package main provides the entry point for the RFP pilot CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rfp_agent",
	Short: "B2B RFP response pipeline",
	Long:  "rfp_agent scans government tender listings, extracts technical requirements from RFP documents, matches them against the product catalog, and produces priced commercial quotes.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
