// Package contract provides interfaces and shared utilities for the incsight CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"incsight/schema"
)

// IncidentAPI defines the necessary operations against the incident source.
// This allows the fetch and auth logic to be tested without a live API.
type IncidentAPI interface {
	// ExchangeToken trades the refresh credential for a short-lived access
	// token and retains it for subsequent calls.
	ExchangeToken(ctx context.Context) (string, error)

	// FetchIncidents pages through the incident listing and returns all
	// records in API order plus the number of pages fetched. Records keep
	// their decoded JSON shape so batches round-trip to disk unchanged.
	FetchIncidents(ctx context.Context, filter FetchFilter) ([]map[string]any, int, error)

	// DownloadCSV downloads the single-shot CSV export for the filter.
	DownloadCSV(ctx context.Context, filter FetchFilter) ([]byte, error)
}

// HistoryManager defines the interface for accessing the fetch history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking fetch runs.
type HistoryStore interface {
	// BeginRun creates a new fetch run and returns its unique ID
	BeginRun(startedAt time.Time, windowStart, windowEnd time.Time, team string) (string, error)

	// FinishRunSuccess updates the fetch run with completion data
	FinishRunSuccess(runID string, finishedAt time.Time, recordCount int, outputFile string) error

	// FinishRunFailure updates the fetch run with the failure text
	FinishRunFailure(runID string, finishedAt time.Time, errorText string) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]schema.FetchRunRecord, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.FetchRunRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs
	Clear() error

	// Close closes the underlying connection
	Close() error
}
