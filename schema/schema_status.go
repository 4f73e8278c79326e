package schema

import "time"

// HistoryStatus represents the status of the fetch history store.
type HistoryStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	TotalRuns      int       `json:"total_runs"`
	LastRunID      string    `json:"last_run_id"`
	LastRunTime    time.Time `json:"last_run_time"`
	OldestRunTime  time.Time `json:"oldest_run_time"`
	TableSizeBytes int64     `json:"table_size_bytes"`
}
