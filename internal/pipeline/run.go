// Package pipeline sequences the RFP analysis stages for a submitted
// document: text extraction, requirement extraction, catalog matching,
// strategic assessment, and pricing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/prasad/rfp-pilot/internal/document"
	"github.com/prasad/rfp-pilot/internal/extraction"
	"github.com/prasad/rfp-pilot/internal/jobs"
	"github.com/prasad/rfp-pilot/internal/matching"
	"github.com/prasad/rfp-pilot/internal/pricing"
	"github.com/prasad/rfp-pilot/internal/strategy"
	"github.com/prasad/rfp-pilot/internal/types"
)

// Progress checkpoints reported while a job is processing. Coarse
// milestones, not fine-grained progress.
const (
	progressIntake  = 10
	progressMatched = 50
	progressDone    = 100
)

// snippetLength bounds the raw text excerpt attached to results.
const snippetLength = 200

// Runner executes the document pipeline for submitted jobs. A single run is
// strictly sequential; separate jobs run concurrently in their own
// goroutines against independent registry entries.
type Runner struct {
	source     extraction.RequirementSource
	matcher    *matching.Matcher
	calculator *pricing.Calculator
	store      jobs.Store
}

// NewRunner assembles a pipeline runner.
func NewRunner(source extraction.RequirementSource, matcher *matching.Matcher, calculator *pricing.Calculator, store jobs.Store) *Runner {
	return &Runner{
		source:     source,
		matcher:    matcher,
		calculator: calculator,
		store:      store,
	}
}

// Process runs the full pipeline for one job. All errors terminate in the
// job registry: recoverable stages degrade and continue, anything else
// marks the job failed. It never panics outward.
func (r *Runner) Process(ctx context.Context, jobID string, content []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Job %s panicked: %v", jobID, rec)
			r.fail(jobID, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	_ = r.store.Update(jobID, func(j *jobs.Job) {
		j.Status = jobs.StatusProcessing
		j.Progress = progressIntake
	})

	result, err := r.analyze(ctx, jobID, content)
	if err != nil {
		r.fail(jobID, err.Error())
		return
	}

	_ = r.store.Update(jobID, func(j *jobs.Job) {
		j.Status = jobs.StatusCompleted
		j.Progress = progressDone
		j.Result = result
	})
}

// analyze produces the quote for a document. Soft failures (empty document,
// unparseable model output) still return a valid zero-value quote.
func (r *Runner) analyze(ctx context.Context, jobID string, content []byte) (*types.QuoteResult, error) {
	ext, err := document.ExtractText(content)
	if err != nil {
		if errors.Is(err, document.ErrEmptyDocument) {
			log.Printf("Job %s: %v", jobID, err)
			empty := r.calculator.Price(nil, nil,
				"Error: document seems empty or is a scanned image. OCR is required but not installed.")
			empty.RawTextSnippet = "EMPTY_TEXT"
			return &empty, nil
		}
		return nil, err
	}

	requirements := r.extractRequirements(ctx, jobID, ext)

	lineItems := make([]types.LineItem, 0, len(requirements))
	for _, req := range requirements {
		lineItems = append(lineItems, types.LineItem{
			Requirement:    req,
			Recommendation: r.matcher.Match(ctx, req),
		})
	}

	_ = r.store.Update(jobID, func(j *jobs.Job) { j.Progress = progressMatched })

	analysis := strategy.Assess(lineItems)
	summary := fmt.Sprintf("AI Analyzed %d line items from RFP.", len(lineItems))

	result := r.calculator.Price(lineItems, &analysis, summary)
	result.RawTextSnippet = snippet(ext.Text)
	return &result, nil
}

// extractRequirements picks the requirement source for the payload.
// Simulated payloads always yield the fixed demo set; extraction failures
// degrade to zero requirements rather than failing the job.
func (r *Runner) extractRequirements(ctx context.Context, jobID string, ext *document.Extraction) []types.Requirement {
	if ext.Simulated {
		return extraction.SimulatedRequirements()
	}

	requirements, err := r.source.Extract(ctx, ext.Text)
	if err != nil {
		log.Printf("Job %s: extraction degraded to zero requirements: %v", jobID, err)
		return []types.Requirement{}
	}
	return requirements
}

func (r *Runner) fail(jobID, message string) {
	_ = r.store.Update(jobID, func(j *jobs.Job) {
		j.Status = jobs.StatusFailed
		j.Message = message
	})
}

func snippet(text string) string {
	if len(text) <= snippetLength {
		return text
	}
	return text[:snippetLength] + "..."
}
