package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"incsight/internal/contract"
	"incsight/schema"
)

// WriteAnalysisResult outputs the top-N aggregation, dispatching based on the
// output format configured.
func WriteAnalysisResult(result schema.AnalysisResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeAnalysisJSONResult(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeAnalysisCSVResult(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(result, w)
		}, "Wrote table")
	}
	return nil
}

// WriteAnalysisCSVFile writes the aggregation as CSV to an explicit path,
// creating parent directories and replacing any previous file. This runs in
// addition to the terminal output, never instead of it.
func WriteAnalysisCSVFile(result schema.AnalysisResult, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return writeAnalysisCSVRows(file, result)
}

// writeAnalysisJSONResult handles opening the file and calling the JSON writer.
func writeAnalysisJSONResult(result schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeAnalysisCSVResult handles opening the file and calling the CSV writer.
func writeAnalysisCSVResult(result schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeAnalysisCSVRows(w, result)
	}, "Wrote CSV")
}

// writeAnalysisTable generates and writes the human-readable table.
func writeAnalysisTable(result schema.AnalysisResult, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Value", "Count"})

	// 2. Configure alignment to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxWidth := getMaxTableValueWidth()
	var data [][]string
	for _, entry := range result.Entries {
		data = append(data, []string{
			contract.TruncateValue(entry.Value, maxWidth),
			strconv.Itoa(entry.Count),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing top %d of %d distinct values for %s (%d records)\n",
		len(result.Entries), result.DistinctLen, result.GroupBy, result.TotalCount)
	return err
}

// writeAnalysisCSVRows writes the aggregation in CSV format.
func writeAnalysisCSVRows(w io.Writer, result schema.AnalysisResult) error {
	return writeCSVWithHeader(w, []string{"value", "count"}, func(csvWriter *csv.Writer) error {
		for _, entry := range result.Entries {
			rec := []string{
				entry.Value,
				strconv.Itoa(entry.Count),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
