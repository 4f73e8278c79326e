package fetchlog

import (
	"errors"
	"fmt"

	"incsight/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of fetch run history to a
// Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no fetch run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total fetch runs: %d\n", status.TotalRuns)

	// Retrieve all fetch runs, oldest first
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve fetch runs: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertFetchRunRecords(runs)

	// Write fetch runs to Parquet
	runsFile := outputFile + ".fetch_runs.parquet"
	if err := parquet.WriteFetchRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write fetch runs: %w", err)
	}
	fmt.Printf("Exported %d fetch runs to: %s\n", len(parquetRuns), runsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
