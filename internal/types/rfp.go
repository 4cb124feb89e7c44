// Package types defines shared data structures used across the RFP pipeline.
package types

// Category classifies a catalog entry.
type Category string

// Catalog entry categories.
const (
	CategoryCable   Category = "Cable"
	CategoryService Category = "Service"
)

// MatchStatus is the outcome of a single spec comparison.
type MatchStatus string

// Spec comparison outcomes.
const (
	StatusMatch    MatchStatus = "Match"
	StatusMismatch MatchStatus = "Mismatch"
)

// Sentinel SKUs used when no catalog product can be recommended.
const (
	SKUNoMatch = "NO_MATCH"
	SKUDBError = "DB_ERROR"
)

// Requirement is a single scope-of-supply item extracted from an RFP document.
type Requirement struct {
	Name     string            `json:"name"`
	Quantity float64           `json:"quantity"`
	Specs    map[string]string `json:"specs"`
}

// CatalogEntry is a product in the company catalog.
type CatalogEntry struct {
	SKU      string            `json:"sku"`
	Name     string            `json:"name"`
	Details  string            `json:"details"`
	Category Category          `json:"category"`
	Price    float64           `json:"price"`
	Specs    map[string]string `json:"specs"`
}

// SearchResult is a catalog entry returned from a similarity search,
// annotated with the search distance (smaller is closer). Specs travel as
// serialized JSON inside the entry metadata and must be deserialized by
// the caller before comparison.
type SearchResult struct {
	SKU      string   `json:"sku"`
	Name     string   `json:"name"`
	Details  string   `json:"details"`
	Category Category `json:"category"`
	Price    float64  `json:"price"`
	SpecsRaw string   `json:"specs"`
	Distance float64  `json:"distance"`
}

// SpecCheck is one row of a requirement-vs-candidate spec comparison.
type SpecCheck struct {
	Spec   string      `json:"spec"`
	Status MatchStatus `json:"status"`
	Value  string      `json:"value"`
}

// CandidateMatch is a scored catalog candidate for a requirement.
type CandidateMatch struct {
	Rank          int         `json:"rank"`
	SKU           string      `json:"sku"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	Category      Category    `json:"category"`
	MatchScore    int         `json:"match_score"`
	SpecBreakdown []SpecCheck `json:"spec_breakdown"`
}

// Recommendation is the selected best candidate for a requirement, or a
// sentinel (NO_MATCH, DB_ERROR) when no candidate is acceptable.
type Recommendation struct {
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           float64          `json:"price,omitempty"`
	Category        Category         `json:"category,omitempty"`
	MatchScore      int              `json:"match_score"`
	ComparisonTable []CandidateMatch `json:"comparison_table,omitempty"`
}

// Pricing is the commercial breakdown for a single line item.
type Pricing struct {
	UnitPrice     float64 `json:"unit_price"`
	Quantity      float64 `json:"quantity"`
	ServiceAddOns float64 `json:"service_add_ons"`
	TotalPrice    float64 `json:"total_price"`
}

// LineItem pairs a requirement with its recommendation. Pricing is appended
// by the pricing calculator after matching completes.
type LineItem struct {
	Requirement    Requirement    `json:"requirement"`
	Recommendation Recommendation `json:"recommendation"`
	Pricing        *Pricing       `json:"pricing,omitempty"`
}

// StrategicAnalysis is the win-probability assessment derived from the full
// set of per-item match scores.
type StrategicAnalysis struct {
	OverallCapabilityScore float64 `json:"overall_capability_score"`
	WinProbability         string  `json:"win_probability"`
	ExecutiveSummary       string  `json:"executive_summary"`
	RiskAssessment         string  `json:"risk_assessment"`
}

// CommercialSummary aggregates line item totals into quote-level figures.
type CommercialSummary struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
}

// QuoteResult is the final output of a completed pipeline run.
type QuoteResult struct {
	LineItems         []LineItem         `json:"line_items"`
	CommercialSummary CommercialSummary  `json:"commercial_summary"`
	TechnicalSummary  string             `json:"technical_summary"`
	StrategicAnalysis *StrategicAnalysis `json:"strategic_analysis,omitempty"`
	RawTextSnippet    string             `json:"raw_text_snippet,omitempty"`
}
