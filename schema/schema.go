// Package schema has shared models and constants for all parts of incsight.
package schema

import "time"

// ValueCount is one aggregation entry: a distinct field value and
// how many records resolved to it.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AnalysisResult is the outcome of a top-N aggregation over a batch.
type AnalysisResult struct {
	GroupBy     string       `json:"group_by"`     // resolved field path
	TotalCount  int          `json:"total_count"`  // number of records in the batch
	Entries     []ValueCount `json:"entries"`      // sorted by count desc, first-seen tie-break
	DistinctLen int          `json:"distinct_len"` // distinct values before truncation
}

// FieldListResult is the outcome of enumerating field paths in a batch.
type FieldListResult struct {
	Paths []string `json:"paths"` // sorted unique dotted paths
	Count int      `json:"count"` // len(Paths)
}

// FetchResult summarizes one completed fetch run.
type FetchResult struct {
	RecordCount int           `json:"record_count"`
	Pages       int           `json:"pages"`
	OutputFile  string        `json:"output_file"`
	Duration    time.Duration `json:"duration"`
}

// TokenInfo is the outcome of a token exchange.
type TokenInfo struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"` // decoded from the JWT exp claim, best effort
}
