// Package matching selects the best catalog product for each extracted
// requirement via semantic candidate retrieval and spec comparison scoring.
package matching

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/prasad/rfp-pilot/internal/types"
)

// CandidateSearcher answers nearest-neighbor catalog queries.
type CandidateSearcher interface {
	Search(ctx context.Context, query string, k int) ([]types.SearchResult, error)
}

// Scoring constants for candidate evaluation.
const (
	// topK is the number of candidates retrieved per requirement.
	topK = 3
	// acceptThreshold is the minimum winning score for a recommendation.
	acceptThreshold = 20
	// maxUsefulDistance is the distance at which a candidate scores zero.
	// Distances outside [0, maxUsefulDistance] saturate rather than error.
	maxUsefulDistance = 1.5
)

// Matcher matches requirements against the product catalog.
type Matcher struct {
	store CandidateSearcher
}

// New creates a Matcher over the given catalog searcher. A nil searcher is
// allowed; every match then degrades to the DB_ERROR sentinel.
func New(store CandidateSearcher) *Matcher {
	return &Matcher{store: store}
}

// BaseScore converts a search distance into a 0-100 match score.
// Distance 0 maps to 100; distances at or beyond maxUsefulDistance map to 0.
func BaseScore(distance float64) int {
	score := math.Round((maxUsefulDistance - distance) / maxUsefulDistance * 100)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// Match finds the best catalog candidate for a requirement. Matching never
// aborts the document pipeline: store failures return the DB_ERROR
// sentinel and empty retrievals return NO_MATCH.
func (m *Matcher) Match(ctx context.Context, req types.Requirement) types.Recommendation {
	if m.store == nil {
		return types.Recommendation{SKU: types.SKUDBError, Name: "Vector DB not loaded", MatchScore: 0}
	}

	candidates, err := m.store.Search(ctx, buildQuery(req), topK)
	if err != nil {
		log.Printf("Catalog search failed for %q: %v", req.Name, err)
		return types.Recommendation{SKU: types.SKUDBError, Name: "Vector DB not loaded", MatchScore: 0}
	}
	if len(candidates) == 0 {
		return types.Recommendation{SKU: types.SKUNoMatch, Name: "No suitable product found", MatchScore: 0}
	}

	comparison := make([]types.CandidateMatch, 0, len(candidates))
	best := -1
	highest := -1

	for idx, cand := range candidates {
		info := types.CandidateMatch{
			Rank:          idx + 1,
			SKU:           cand.SKU,
			Name:          cand.Name,
			Description:   cand.Details,
			Price:         cand.Price,
			Category:      cand.Category,
			MatchScore:    BaseScore(cand.Distance),
			SpecBreakdown: buildSpecBreakdown(req.Specs, decodeSpecs(cand.SpecsRaw), cand),
		}
		comparison = append(comparison, info)

		// Strictly-greater keeps retrieval order as the tie-break.
		if info.MatchScore > highest {
			highest = info.MatchScore
			best = idx
		}
	}

	if highest < acceptThreshold {
		return types.Recommendation{
			SKU:             types.SKUNoMatch,
			Name:            "No suitable product found (Low Score)",
			MatchScore:      highest,
			ComparisonTable: comparison,
		}
	}

	winner := comparison[best]
	return types.Recommendation{
		SKU:             winner.SKU,
		Name:            winner.Name,
		Description:     winner.Description,
		Price:           winner.Price,
		Category:        winner.Category,
		MatchScore:      winner.MatchScore,
		ComparisonTable: comparison,
	}
}

// buildQuery flattens a requirement into search text. Spec keys are sorted
// so the query is deterministic for a given requirement.
func buildQuery(req types.Requirement) string {
	parts := []string{req.Name}

	keys := make([]string, 0, len(req.Specs))
	for k := range req.Specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+req.Specs[k])
	}

	return strings.Join(parts, " ")
}
