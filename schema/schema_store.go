package schema

import "time"

// Run statuses stored in the fetch run history table.
const (
	RunStarted   = "started"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// FetchRunRecord represents a row from the fetch run history table.
type FetchRunRecord struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Status      string
	WindowStart time.Time
	WindowEnd   time.Time
	Team        string
	RecordCount *int32
	OutputFile  *string
	ErrorText   *string
}
