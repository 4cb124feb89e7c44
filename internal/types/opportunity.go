package types

// Opportunity is a single tender extracted from a portal listing.
type Opportunity struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Source         string `json:"source"`
	PublishDate    string `json:"publish_date"`
	DueDate        string `json:"due_date"`
	Status         string `json:"status"`
	MatchScore     int    `json:"match_score"`
	URL            string `json:"url"`
	SubmissionRisk string `json:"submission_risk"`
	StrategicFit   string `json:"strategic_fit"`
	RightToWin     int    `json:"right_to_win_score"`
	Action         string `json:"action"`
}

// ScanReport summarizes one pass over the monitored tender sources.
type ScanReport struct {
	LastScanned        string        `json:"last_scanned"`
	ScanFrequency      string        `json:"scan_frequency"`
	SearchCriteria     string        `json:"search_criteria"`
	SourcesMonitored   []string      `json:"sources_monitored"`
	OpportunitiesFound int           `json:"opportunities_found"`
	Opportunities      []Opportunity `json:"opportunities"`
}
