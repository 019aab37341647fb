package model

import "time"

// Summary holds the counts reported at the end of a run.
type Summary struct {
	OriginalLeads    int            `json:"original_leads"`
	DedupedLeads     int            `json:"deduped_leads"`
	DealerRows       int            `json:"dealer_rows"`
	DealerZips       int            `json:"dealer_zips"`
	TargetLeads      int            `json:"target_leads"`
	BlankDealer      int            `json:"blank_dealer"`
	Updated          int            `json:"updated"`
	Unresolved       int            `json:"unresolved"`
	TotalLeads       int            `json:"total_leads"`
	RouteCounts      map[string]int `json:"route_counts"`
	TargetWithDealer int            `json:"target_with_dealer"`
}

// Run is one recorded pipeline execution.
type Run struct {
	ID            string    `json:"id"`
	LeadsPath     string    `json:"leads_path"`
	DealersPath   string    `json:"dealers_path"`
	OutputPath    string    `json:"output_path"`
	LeadsDigest   string    `json:"leads_digest"`
	DealersDigest string    `json:"dealers_digest"`
	OutputDigest  string    `json:"output_digest"`
	Summary       Summary   `json:"summary"`
	CreatedAt     time.Time `json:"created_at"`
}
