// Package strategy aggregates per-item match scores into a win-probability
// assessment.
package strategy

import (
	"math"

	"github.com/prasad/rfp-pilot/internal/types"
)

// Win probability bands over the average match score.
const (
	highWinThreshold   = 75
	mediumWinThreshold = 40
	lowRiskThreshold   = 60
)

// Assess derives a strategic analysis from matched line items. It is a pure
// function of the per-item scores: no hidden state, fully reproducible for
// a given input.
func Assess(items []types.LineItem) types.StrategicAnalysis {
	total := 0
	for _, item := range items {
		total += item.Recommendation.MatchScore
	}

	// Denominator is at least 1 so zero extracted requirements still
	// produce a valid (Low) assessment.
	count := len(items)
	if count == 0 {
		count = 1
	}
	avg := float64(total) / float64(count)

	var winProb, rationale string
	switch {
	case avg > highWinThreshold:
		winProb = "High"
		rationale = "Strong portfolio fit. We have exact specs for most items."
	case avg > mediumWinThreshold:
		winProb = "Medium"
		rationale = "Partial fit. Some customization or third-party sourcing required."
	default:
		winProb = "Low"
		rationale = "High risk. Multiple items matched poorly or require new interaction."
	}

	risk := "High"
	if avg > lowRiskThreshold {
		risk = "Low"
	}

	return types.StrategicAnalysis{
		OverallCapabilityScore: math.Round(avg*10) / 10,
		WinProbability:         winProb,
		ExecutiveSummary:       rationale,
		RiskAssessment:         risk,
	}
}
