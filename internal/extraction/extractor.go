// Package extraction turns raw RFP text into structured requirements using
// a language model, with a deterministic fallback when no model credential
// is configured.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"github.com/prasad/rfp-pilot/internal/llm"
	"github.com/prasad/rfp-pilot/internal/types"
)

// maxPromptText caps the document text sent to the model to stay inside
// context limits.
const maxPromptText = 30000

// RequirementSource extracts scope-of-supply requirements from document
// text. The concrete variant is chosen once at construction based on
// credential availability.
type RequirementSource interface {
	Extract(ctx context.Context, text string) ([]types.Requirement, error)
}

// ModelSource extracts requirements with a language model and validates the
// response against a fixed schema.
type ModelSource struct {
	client llm.Client
}

// NewModelSource creates a model-backed requirement source.
func NewModelSource(client llm.Client) *ModelSource {
	return &ModelSource{client: client}
}

// Extract runs the extraction prompt and parses the response. A model call
// failure is returned as an APICallError; a malformed response yields an
// empty slice plus a ParseError so the caller can continue with zero
// requirements.
func (s *ModelSource) Extract(ctx context.Context, text string) ([]types.Requirement, error) {
	text = truncateText(text, maxPromptText)

	prompt := buildExtractionPrompt(text)

	response, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "requirement extraction failed", Cause: err}
	}

	items, err := parseExtraction(response)
	if err != nil {
		log.Printf("Extraction parse failed: %v", err)
		return []types.Requirement{}, err
	}
	return items, nil
}

// FixedSource returns a single deterministic mock requirement. It keeps the
// rest of the pipeline exercisable when no API key is configured.
type FixedSource struct{}

// NewFixedSource creates the credential-less fallback source.
func NewFixedSource() *FixedSource {
	return &FixedSource{}
}

// Extract returns the fixed mock requirement regardless of input.
func (s *FixedSource) Extract(_ context.Context, _ string) ([]types.Requirement, error) {
	return []types.Requirement{
		{
			Name:     "Mock AI Item",
			Quantity: 1,
			Specs:    map[string]string{"voltage": "11kV", "insulation": "Mock"},
		},
	}, nil
}

// SimulatedRequirements is the requirement set used for simulated demo
// payloads. Returning these directly keeps the demo output consistent.
func SimulatedRequirements() []types.Requirement {
	return []types.Requirement{
		{
			Name:     "11kV XLPE Power Cable, 3 Core, 300sqmm, Armoured",
			Quantity: 5000,
			Specs:    map[string]string{"voltage": "11kV", "insulation": "XLPE", "cores": "3", "armouring": "Strip"},
		},
		{
			Name:     "1.1kV PVC Control Cable, 12 Core, 1.5sqmm, Unarmoured",
			Quantity: 2000,
			Specs:    map[string]string{"voltage": "1.1kV", "insulation": "PVC", "cores": "12", "armouring": "Unarmoured"},
		},
		{
			Name:     "Enterprise Cloud Hosting & Managed Services",
			Quantity: 12,
			Specs:    map[string]string{"type": "Cloud", "sla": "99.9%", "platform": "AWS/Azure"},
		},
	}
}

// truncateText caps text at max bytes without splitting a multi-byte UTF-8
// character at the cut point.
func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// buildExtractionPrompt constructs the scope-of-supply extraction prompt.
func buildExtractionPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert Technical Sales Engineer. Extract the 'Scope of Supply' from the following RFP text.\n")
	sb.WriteString("Identify cable requirements, specifications, AND quantities.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{"items": [{"name": "item name", "quantity": 1.0, "specs": {"voltage": "...", "insulation": "...", "cores": "...", "armouring": "..."}}]}`)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent items.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("RFP Text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// extractionEnvelope mirrors the schema-validated response shape.
type extractionEnvelope struct {
	Items []types.Requirement `json:"items"`
}

// parseExtraction validates the model response against the extraction
// schema and unmarshals it.
func parseExtraction(response string) ([]types.Requirement, error) {
	cleaned := llm.CleanJSONBlock(response)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(extractionSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, &ParseError{Message: "response does not match extraction schema: " + strings.Join(msgs, "; ")}
	}

	var envelope extractionEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal response", Cause: err}
	}

	items := envelope.Items
	for i := range items {
		if items[i].Quantity <= 0 {
			items[i].Quantity = 1
		}
		if items[i].Specs == nil {
			items[i].Specs = map[string]string{}
		}
	}
	return items, nil
}
