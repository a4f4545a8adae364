package model

import "time"

// RunStatus represents the current state of a search run.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusSearching RunStatus = "searching"
	RunStatusComplete  RunStatus = "complete"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one persisted search run over a set of target areas.
type Run struct {
	ID        string         `json:"id"`
	Criteria  SearchCriteria `json:"criteria"`
	ZipCodes  []string       `json:"zip_codes"`
	Status    RunStatus      `json:"status"`
	Result    *RunResult     `json:"result,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RunResult holds the final outcome counters of a run.
type RunResult struct {
	RawResults int    `json:"raw_results"`
	Candidates int    `json:"candidates"`
	Extracted  int    `json:"extracted"`
	Passed     int    `json:"passed"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}
