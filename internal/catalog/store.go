// Package catalog provides durable product catalog storage with semantic
// nearest-neighbor search.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prasad/rfp-pilot/internal/types"
)

// Store persists catalog entries in PostgreSQL and answers nearest-neighbor
// queries over their embeddings. Ranking happens in process: the demo
// catalog is a handful of rows, so loading every embedding per query is
// cheaper than carrying a vector-index dependency.
type Store struct {
	pool     *pgxpool.Pool
	embedder Embedder
}

// Connect establishes a connection pool and ensures the catalog schema.
func Connect(ctx context.Context, databaseURL string, embedder Embedder) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool, embedder: embedder}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_entries (
			sku        TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			details    TEXT NOT NULL DEFAULT '',
			category   TEXT NOT NULL,
			price      DOUBLE PRECISION NOT NULL DEFAULT 0,
			specs      JSONB NOT NULL DEFAULT '{}',
			embedding  REAL[] NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure catalog schema: %w", err)
	}
	return nil
}

// Upsert inserts or replaces entries by SKU. Seeding the same SKU set twice
// leaves the entry count unchanged.
func (s *Store) Upsert(ctx context.Context, entries []types.CatalogEntry) error {
	for _, entry := range entries {
		specsJSON, err := json.Marshal(entry.Specs)
		if err != nil {
			return fmt.Errorf("failed to marshal specs for %s: %w", entry.SKU, err)
		}

		embedding, err := s.embedder.Embed(ctx, entry.Name+" - "+entry.Details)
		if err != nil {
			return fmt.Errorf("failed to embed entry %s: %w", entry.SKU, err)
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO catalog_entries (sku, name, details, category, price, specs, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (sku) DO UPDATE SET
			   name = $2, details = $3, category = $4, price = $5, specs = $6,
			   embedding = $7, updated_at = NOW()`,
			entry.SKU, entry.Name, entry.Details, string(entry.Category),
			entry.Price, specsJSON, embedding,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert entry %s: %w", entry.SKU, err)
		}
	}
	return nil
}

// Count returns the number of catalog entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// storedEntry is a catalog row with its embedding, loaded for ranking.
type storedEntry struct {
	result    types.SearchResult
	embedding []float32
}

// Search returns up to k entries nearest to the query text, ordered by
// ascending cosine distance.
func (s *Store) Search(ctx context.Context, query string, k int) ([]types.SearchResult, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT sku, name, details, category, price, specs::text, embedding FROM catalog_entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []storedEntry
	for rows.Next() {
		var e storedEntry
		var category string
		if err := rows.Scan(&e.result.SKU, &e.result.Name, &e.result.Details,
			&category, &e.result.Price, &e.result.SpecsRaw, &e.embedding); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		e.result.Category = types.Category(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog entries: %w", err)
	}

	return rankNearest(queryVec, entries, k), nil
}

// rankNearest orders entries by cosine distance to the query vector and
// returns the closest k with distances attached.
func rankNearest(queryVec []float32, entries []storedEntry, k int) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(entries))
	for _, e := range entries {
		r := e.result
		r.Distance = CosineDistance(queryVec, e.embedding)
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}
