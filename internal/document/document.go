// Package document turns uploaded RFP payloads into plain text for the
// extraction stage.
package document

import (
	"bytes"
	"fmt"
	"strings"
)

// SimulatedPrefix marks demo payloads that bypass real document parsing.
// Content carrying this prefix is treated as already-extracted text with a
// known scope-of-work block appended, so the demo produces a stable result
// without a real PDF.
const SimulatedPrefix = "Simulated PDF Content"

// MinTextLength is the minimum extracted text length considered usable.
// Anything shorter is assumed to be an empty or scanned document.
const MinTextLength = 50

// ErrEmptyDocument is returned when extraction yields too little text to
// analyze. The job fails with a descriptive message rather than producing
// a meaningless quote.
var ErrEmptyDocument = fmt.Errorf("document is empty or appears to be a scanned image (OCR not supported)")

// simulatedScope is appended to simulated payloads so the extraction stage
// sees the same line items the demo catalog was seeded for.
const simulatedScope = `
SCOPE OF WORK:
1. Supply of 11kV XLPE Power Cable, 3 Core, 300sqmm, Armoured. Quantity: 5000 meters.
2. Supply of 1.1kV PVC Control Cable, 12 Core, 1.5sqmm, Unarmoured. Quantity: 2000 meters.
3. Enterprise Cloud Hosting & Managed Services for SCADA System. Quantity: 12 months.
`

// Extraction holds the text pulled from a document payload.
type Extraction struct {
	Text      string
	PageCount int
	Simulated bool
}

// IsSimulated reports whether the payload is a demo payload.
func IsSimulated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(SimulatedPrefix))
}

// ExtractText extracts plain text from an uploaded payload. Simulated
// payloads skip parsing entirely; other payloads are treated as UTF-8 text
// (real PDF parsing and OCR are out of scope).
func ExtractText(content []byte) (*Extraction, error) {
	if IsSimulated(content) {
		return &Extraction{
			Text:      string(content) + simulatedScope,
			PageCount: 1,
			Simulated: true,
		}, nil
	}

	text := string(content)
	if len(strings.TrimSpace(text)) < MinTextLength {
		return nil, ErrEmptyDocument
	}

	// Page count approximation for plain text payloads.
	pages := strings.Count(text, "\f") + 1

	return &Extraction{
		Text:      text,
		PageCount: pages,
	}, nil
}
