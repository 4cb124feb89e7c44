package types

// ProcessingStatus is the payload returned by job submission and status
// polling. Message is only set on submission and on failed jobs.
type ProcessingStatus struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message,omitempty"`
}

// ScanResponse wraps a scan report for the sales endpoints.
type ScanResponse struct {
	Message            string     `json:"message"`
	FoundOpportunities int        `json:"found_opportunities"`
	Opportunities      ScanReport `json:"opportunities"`
}
