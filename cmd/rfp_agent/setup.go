package main

import (
	"context"
	"log"

	"github.com/prasad/rfp-pilot/internal/catalog"
	"github.com/prasad/rfp-pilot/internal/config"
	"github.com/prasad/rfp-pilot/internal/extraction"
	"github.com/prasad/rfp-pilot/internal/jobs"
	"github.com/prasad/rfp-pilot/internal/llm"
	"github.com/prasad/rfp-pilot/internal/matching"
	"github.com/prasad/rfp-pilot/internal/pipeline"
	"github.com/prasad/rfp-pilot/internal/pricing"
)

// components holds the assembled pipeline dependencies.
type components struct {
	runner *pipeline.Runner
	jobs   jobs.Store
	store  *catalog.Store
	client llm.Client
}

// close releases held resources.
func (c *components) close() {
	if c.store != nil {
		c.store.Close()
	}
	if c.client != nil {
		_ = c.client.Close()
	}
}

// newEmbedder picks the model-backed embedder when a client is available,
// falling back to the deterministic hash embedder.
func newEmbedder(client llm.Client) catalog.Embedder {
	if client != nil {
		return catalog.NewGeminiEmbedder(client)
	}
	return catalog.NewHashEmbedder()
}

// buildComponents assembles the pipeline from configuration. Missing
// credentials or database connectivity degrade to fallback modes rather
// than failing startup: the demo must stay runnable with nothing
// configured.
func buildComponents(ctx context.Context, cfg *config.Config) *components {
	c := &components{jobs: jobs.NewMemoryStore()}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			log.Printf("Warning: LLM client unavailable, using fallback extraction: %v", err)
		} else {
			c.client = client
		}
	} else {
		log.Printf("Warning: GEMINI_API_KEY not set. Extraction and embeddings run in fallback mode.")
	}

	var source extraction.RequirementSource
	if c.client != nil {
		source = extraction.NewModelSource(c.client)
	} else {
		source = extraction.NewFixedSource()
	}

	var searcher matching.CandidateSearcher
	if cfg.DatabaseURL != "" {
		store, err := catalog.Connect(ctx, cfg.DatabaseURL, newEmbedder(c.client))
		if err != nil {
			log.Printf("Warning: catalog store unavailable, matches will report DB_ERROR: %v", err)
		} else {
			c.store = store
			searcher = store
		}
	} else {
		log.Printf("Warning: DATABASE_URL not set, matches will report DB_ERROR.")
	}

	c.runner = pipeline.NewRunner(source, matching.New(searcher), pricing.New(pricing.DefaultRateCard()), c.jobs)
	return c
}
