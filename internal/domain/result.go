package domain

import "time"

// StateResult is one state's completed scoring run: every scored-and-tiered
// county plus the tier distribution, stamped with the run that produced it.
type StateResult struct {
	StateCode   string        `json:"state_code"`
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	YearPrev    int           `json:"year_prev"`
	YearLatest  int           `json:"year_latest"`
	Counties    []CountySwing `json:"counties"`
	Summary     []TierSummary `json:"summary"`
}
