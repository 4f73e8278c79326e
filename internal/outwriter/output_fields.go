package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"incsight/internal/contract"
	"incsight/schema"
)

// WriteFieldListResult outputs the discovered field paths, dispatching based
// on the output format configured.
func WriteFieldListResult(result schema.FieldListResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeFieldListJSONResult(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeFieldListCSVResult(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFieldList(result, w)
		}, "Wrote field list")
	}
	return nil
}

// writeFieldListJSONResult handles opening the file and calling the JSON writer.
func writeFieldListJSONResult(result schema.FieldListResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeFieldListCSVResult handles opening the file and calling the CSV writer.
func writeFieldListCSVResult(result schema.FieldListResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, []string{"field"}, func(csvWriter *csv.Writer) error {
			for _, path := range result.Paths {
				if err := csvWriter.Write([]string{path}); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeFieldList writes the human-readable field listing.
func writeFieldList(result schema.FieldListResult, w io.Writer) error {
	if _, err := contract.InfoColor.Fprintln(w, "Available fields:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, path := range result.Paths {
		if _, err := fmt.Fprintf(w, "- %s\n", path); err != nil {
			return err
		}
	}
	_, err := contract.SuccessColor.Fprintf(w, "\nTotal fields: %d\n", result.Count)
	return err
}
