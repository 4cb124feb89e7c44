package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/prasad/rfp-pilot/internal/config"
	"github.com/prasad/rfp-pilot/internal/scanner"
	"github.com/prasad/rfp-pilot/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the RFP upload, status, result, and tender scan endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	cfg.Port = servePort
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	c := buildComponents(ctx, cfg)
	defer c.close()

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Runner:  c.runner,
		Jobs:    c.jobs,
		Scanner: scanner.New(cfg.TenderSources),
	})

	return srv.Start()
}
