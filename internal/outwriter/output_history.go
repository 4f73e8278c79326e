package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"incsight/internal/contract"
	"incsight/schema"
)

const runIDDisplayLen = 8

// WriteHistoryRuns outputs recorded fetch runs, dispatching based on the
// output format configured.
func WriteHistoryRuns(runs []schema.FetchRunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeHistoryJSONResult(runs, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeHistoryCSVResult(runs, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(runs, w)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryJSONResult handles opening the file and calling the JSON writer.
func writeHistoryJSONResult(runs []schema.FetchRunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONRunsForHistory(w, runs)
	}, "Wrote JSON")
}

// writeJSONRunsForHistory writes the fetch runs in JSON format.
func writeJSONRunsForHistory(w io.Writer, runs []schema.FetchRunRecord) error {
	// 1. Prepare the data structure for JSON with stable snake_case keys
	type JSONRunRecord struct {
		RunID       string     `json:"run_id"`
		StartedAt   time.Time  `json:"started_at"`
		FinishedAt  *time.Time `json:"finished_at,omitempty"`
		Status      string     `json:"status"`
		WindowStart time.Time  `json:"window_start"`
		WindowEnd   time.Time  `json:"window_end"`
		Team        string     `json:"team,omitempty"`
		RecordCount *int32     `json:"record_count,omitempty"`
		OutputFile  *string    `json:"output_file,omitempty"`
		ErrorText   *string    `json:"error_text,omitempty"`
	}

	output := make([]JSONRunRecord, len(runs))
	for i, r := range runs {
		output[i] = JSONRunRecord{
			RunID:       r.RunID,
			StartedAt:   r.StartedAt,
			FinishedAt:  r.FinishedAt,
			Status:      r.Status,
			WindowStart: r.WindowStart,
			WindowEnd:   r.WindowEnd,
			Team:        r.Team,
			RecordCount: r.RecordCount,
			OutputFile:  r.OutputFile,
			ErrorText:   r.ErrorText,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeHistoryCSVResult handles opening the file and calling the CSV writer.
func writeHistoryCSVResult(runs []schema.FetchRunRecord, cfg *contract.Config) error {
	header := []string{
		"run_id", "started_at", "finished_at", "status",
		"window_start", "window_end", "team", "record_count",
		"output_file", "error_text",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, run := range runs {
				rec := []string{
					run.RunID,
					run.StartedAt.Format(contract.DateTimeFormat),
					formatOptionalTime(run.FinishedAt),
					run.Status,
					run.WindowStart.Format(contract.DateTimeFormat),
					run.WindowEnd.Format(contract.DateTimeFormat),
					run.Team,
					formatOptionalInt32(run.RecordCount),
					derefOrEmpty(run.OutputFile),
					derefOrEmpty(run.ErrorText),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeHistoryTable generates and writes the human-readable run table.
func writeHistoryTable(runs []schema.FetchRunRecord, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Run", "Started", "Status", "Window", "Team", "Records", "Output"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTableValueWidth()
	var data [][]string
	for _, run := range runs {
		runID := run.RunID
		if len(runID) > runIDDisplayLen {
			runID = runID[:runIDDisplayLen]
		}
		window := fmt.Sprintf("%s to %s",
			run.WindowStart.Format("2006-01-02"),
			run.WindowEnd.Format("2006-01-02"))
		data = append(data, []string{
			runID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Status,
			window,
			run.Team,
			formatOptionalInt32(run.RecordCount),
			contract.TruncateValue(derefOrEmpty(run.OutputFile), maxWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d fetch runs\n", len(runs))
	return err
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(contract.DateTimeFormat)
}

func formatOptionalInt32(n *int32) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(int(*n))
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
