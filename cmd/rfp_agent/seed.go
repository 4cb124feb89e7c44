package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prasad/rfp-pilot/internal/catalog"
	"github.com/prasad/rfp-pilot/internal/config"
	"github.com/prasad/rfp-pilot/internal/llm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the product catalog",
	Long:  "Upsert the demo product catalog into the database and verify search works.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	var client llm.Client
	if cfg.APIKey != "" {
		var err error
		client, err = llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}

	store, err := catalog.Connect(ctx, cfg.DatabaseURL, newEmbedder(client))
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintln(os.Stdout, "Seeding database with products...")
	if err := store.Upsert(ctx, catalog.SeedEntries()); err != nil {
		return err
	}

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Seeding complete: %d catalog entries.\n", count)

	// Sanity-check retrieval
	results, err := store.Search(ctx, "We need cloud hosting servers", 1)
	if err != nil {
		return fmt.Errorf("test search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "Test search returned no matches.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Test search found: %s (SKU: %s, distance %.3f)\n",
		results[0].Name, results[0].SKU, results[0].Distance)
	return nil
}
