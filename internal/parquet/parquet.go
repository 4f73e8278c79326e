// Package parquet provides data structures and functions for exporting fetch
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"incsight/schema"
)

// FetchRun represents a single incident fetch run with metadata.
// This struct maps to the incsight_fetch_runs database table.
type FetchRun struct {
	// RunID is the unique identifier for this fetch run
	RunID string `parquet:"run_id,snappy"`

	// StartedAt is when the fetch began (stored as TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the fetch completed (nullable, stored as TIMESTAMP with nanosecond precision)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`

	// Status is the terminal state of the run (started, succeeded, failed)
	Status string `parquet:"status,snappy"`

	// WindowStart is the lower bound of the fetched incident window
	WindowStart time.Time `parquet:"window_start,snappy"`

	// WindowEnd is the upper bound of the fetched incident window
	WindowEnd time.Time `parquet:"window_end,snappy"`

	// Team is the owner filter used for the fetch, empty when unfiltered
	Team string `parquet:"team,snappy"`

	// RecordCount is the number of incidents fetched (nullable)
	RecordCount *int32 `parquet:"record_count,optional,snappy"`

	// OutputFile is the export file written by the run (nullable)
	OutputFile *string `parquet:"output_file,optional,snappy"`

	// ErrorText holds the failure message for failed runs (nullable)
	ErrorText *string `parquet:"error_text,optional,snappy"`
}

// WriteFetchRunsParquet writes a slice of FetchRun structs to a Parquet file.
func WriteFetchRunsParquet(data []FetchRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FetchRun struct tags
	writer := parquet.NewGenericWriter[FetchRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns generates sample FetchRun data for demonstration.
func MockFetchRuns() []FetchRun {
	now := time.Now()
	started1 := now.Add(-2 * time.Hour)
	finished1 := started1.Add(45 * time.Second)
	count1 := int32(318)
	output1 := "data/raw/incidents_20251001T080045Z.json"

	started2 := now.Add(-24 * time.Hour)
	finished2 := started2.Add(12 * time.Second)
	errText2 := "transport error: HTTP 502: upstream unavailable"

	started3 := now.Add(-10 * time.Minute)
	// Note: finished3, count3, output3 are nil to demonstrate nullable fields

	return []FetchRun{
		{
			RunID:       "3f1c2b34-93a1-4c6e-bf0e-1a2b3c4d5e6f",
			StartedAt:   started1,
			FinishedAt:  &finished1,
			Status:      schema.RunSucceeded,
			WindowStart: started1.Add(-30 * 24 * time.Hour),
			WindowEnd:   started1,
			Team:        "team-platform",
			RecordCount: &count1,
			OutputFile:  &output1,
		},
		{
			RunID:       "8a9b0c1d-2e3f-4a5b-8c7d-9e0f1a2b3c4d",
			StartedAt:   started2,
			FinishedAt:  &finished2,
			Status:      schema.RunFailed,
			WindowStart: started2.Add(-7 * 24 * time.Hour),
			WindowEnd:   started2,
			ErrorText:   &errText2,
		},
		{
			RunID:       "c5d6e7f8-0a1b-4c2d-9e3f-4a5b6c7d8e9f",
			StartedAt:   started3,
			FinishedAt:  nil, // Still running - nullable field
			Status:      schema.RunStarted,
			WindowStart: started3.Add(-24 * time.Hour),
			WindowEnd:   started3,
			RecordCount: nil, // Not yet known - nullable field
			OutputFile:  nil, // Not yet written - nullable field
		},
	}
}

// ConvertFetchRunRecords converts schema.FetchRunRecord to FetchRun for Parquet export.
func ConvertFetchRunRecords(records []schema.FetchRunRecord) []FetchRun {
	result := make([]FetchRun, len(records))
	for i, record := range records {
		result[i] = FetchRun{
			RunID:       record.RunID,
			StartedAt:   record.StartedAt,
			FinishedAt:  record.FinishedAt,
			Status:      record.Status,
			WindowStart: record.WindowStart,
			WindowEnd:   record.WindowEnd,
			Team:        record.Team,
			RecordCount: record.RecordCount,
			OutputFile:  record.OutputFile,
			ErrorText:   record.ErrorText,
		}
	}
	return result
}
