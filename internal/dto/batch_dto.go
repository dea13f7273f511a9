package dto

import "time"

// Batch run lifecycle states.
const (
	// BatchStatusInitialized means the run has been created but not started.
	BatchStatusInitialized = "initialized"
	// BatchStatusRunning means the run is iterating its input set.
	BatchStatusRunning = "running"
	// BatchStatusCompleted means the run finished over its full input set.
	BatchStatusCompleted = "completed"
)

// BatchItemResult records the outcome for a single unit of batch work.
type BatchItemResult struct {
	Key     string `json:"key"`
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// BatchReport aggregates the outcome of one orchestrated run.
type BatchReport struct {
	RunID      string            `json:"run_id"`
	Kind       string            `json:"kind"`
	Status     string            `json:"status"`
	Total      int               `json:"total"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Skipped    int               `json:"skipped"`
	Items      []BatchItemResult `json:"items,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}
