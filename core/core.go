// Package core has core logic for fetching, analyzing and reporting incidents.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"incsight/core/agg"
	"incsight/core/algo"
	"incsight/internal/contract"
	"incsight/internal/fetchlog"
	"incsight/internal/jsonval"
	"incsight/internal/outwriter"
	"incsight/internal/rawstore"
	"incsight/internal/squadcast"
	"incsight/internal/token"
	"incsight/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteAuth exchanges the refresh credential and prints the access token.
// It serves as the main entry point for the 'auth' command.
func ExecuteAuth(ctx context.Context, cfg *contract.Config) error {
	return runAuth(ctx, cfg, newAPIClient(cfg))
}

// ExecuteFetch downloads incidents for the configured window, saves the raw
// batch and records the run in the history store. It serves as the main entry
// point for the 'fetch' command.
func ExecuteFetch(ctx context.Context, cfg *contract.Config) error {
	store := rawstore.New(cfg.DataDir)
	history := fetchlog.Manager.GetHistoryStore()
	return runFetch(ctx, cfg, newAPIClient(cfg), store, history)
}

// ExecuteListFields enumerates the distinct field paths in a batch file.
// It serves as the main entry point for the 'list-fields' command.
func ExecuteListFields(_ context.Context, cfg *contract.Config) error {
	result, err := GetFieldListResult(cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteFieldListResult(result, cfg)
}

// ExecuteAnalyze computes the top-N aggregation for a batch file. It serves
// as the main entry point for the 'analyze' command.
func ExecuteAnalyze(_ context.Context, cfg *contract.Config) error {
	result, err := GetAnalysisResult(cfg)
	if err != nil {
		return err
	}

	if err := outwriter.WriteAnalysisResult(result, cfg); err != nil {
		return err
	}

	if cfg.CSVOut != "" {
		if err := outwriter.WriteAnalysisCSVFile(result, cfg.CSVOut); err != nil {
			return err
		}
		if _, err := contract.SuccessColor.Printf("CSV saved: %s\n", cfg.CSVOut); err != nil {
			return err
		}
	}
	return nil
}

// GetFieldListResult loads the configured batch file and returns the sorted
// distinct field paths without writing any output. This is exposed for the
// MCP handlers.
func GetFieldListResult(cfg *contract.Config) (schema.FieldListResult, error) {
	batch, err := loadBatch(cfg)
	if err != nil {
		return schema.FieldListResult{}, err
	}

	paths := jsonval.Fields(batch)
	return schema.FieldListResult{
		Paths: paths,
		Count: len(paths),
	}, nil
}

// GetAnalysisResult loads the configured batch file, resolves the grouping
// field and returns the top-N aggregation without writing any output. This
// is exposed for the MCP handlers.
func GetAnalysisResult(cfg *contract.Config) (schema.AnalysisResult, error) {
	batch, err := loadBatch(cfg)
	if err != nil {
		return schema.AnalysisResult{}, err
	}
	if len(batch) == 0 {
		return schema.AnalysisResult{}, fmt.Errorf("%w: no records to analyze in %s", contract.ErrInput, cfg.InputFile)
	}

	groupBy, err := algo.ResolveFieldPath(jsonval.Fields(batch), cfg.GroupBy)
	if err != nil {
		return schema.AnalysisResult{}, err
	}
	slog.Debug("resolved grouping field", "requested", cfg.GroupBy, "resolved", groupBy)

	return agg.TopCounts(batch, groupBy, cfg.TopN)
}

// newAPIClient builds the production Squadcast client from configuration.
func newAPIClient(cfg *contract.Config) contract.IncidentAPI {
	return squadcast.New(cfg.AuthURL, cfg.BaseAPI, cfg.RefreshToken)
}

// runAuth performs the token exchange against the given API client. The
// token goes to stdout by itself so it can be piped; the expiry note goes
// to stderr.
func runAuth(ctx context.Context, cfg *contract.Config, client contract.IncidentAPI) error {
	if err := cfg.RequireCredential(); err != nil {
		return err
	}

	accessToken, err := client.ExchangeToken(ctx)
	if err != nil {
		return err
	}
	fmt.Println(accessToken)

	if expiry := token.Expiry(accessToken); expiry != nil {
		if _, err := contract.NoticeColor.Fprintf(os.Stderr, "Token expires at %s\n", expiry.Format(contract.DateTimeFormat)); err != nil {
			return err
		}
	}
	return nil
}

// runFetch performs the fetch flow against the given collaborators. The
// history store only records metadata; its failures warn instead of failing
// the fetch.
func runFetch(ctx context.Context, cfg *contract.Config, client contract.IncidentAPI, store *rawstore.Store, history contract.HistoryStore) error {
	if err := cfg.RequireCredential(); err != nil {
		return err
	}
	if err := store.EnsureDirs(); err != nil {
		return err
	}

	start := time.Now()
	filter := cfg.Filter()

	runID, err := history.BeginRun(start.UTC(), filter.StartTime, filter.EndTime, filter.Team)
	if err != nil {
		contract.LogWarn("Failed to record fetch run start", err)
	}

	outputFile, recordCount, pages, err := fetchAndSave(ctx, cfg, client, store, filter)
	if err != nil {
		if runID != "" {
			if ferr := history.FinishRunFailure(runID, time.Now().UTC(), err.Error()); ferr != nil {
				contract.LogWarn("Failed to record fetch run failure", ferr)
			}
		}
		return err
	}

	if runID != "" {
		if ferr := history.FinishRunSuccess(runID, time.Now().UTC(), recordCount, outputFile); ferr != nil {
			contract.LogWarn("Failed to record fetch run success", ferr)
		}
	}

	duration := time.Since(start)
	return printFetchSummary(cfg, outputFile, recordCount, pages, duration)
}

// fetchAndSave authenticates, downloads the batch in the requested format
// and writes exactly one output file. Nothing is written on error, so a
// failed fetch never leaves a partial batch behind.
func fetchAndSave(ctx context.Context, cfg *contract.Config, client contract.IncidentAPI, store *rawstore.Store, filter contract.FetchFilter) (string, int, int, error) {
	if _, err := client.ExchangeToken(ctx); err != nil {
		return "", 0, 0, err
	}

	if cfg.FetchType == schema.CSVFetch {
		content, err := client.DownloadCSV(ctx, filter)
		if err != nil {
			return "", 0, 0, err
		}
		outputFile, err := store.SaveCSV(content, time.Now())
		return outputFile, 0, 1, err
	}

	records, pages, err := client.FetchIncidents(ctx, filter)
	if err != nil {
		return "", 0, 0, err
	}
	outputFile, err := store.SaveBatch(records, time.Now())
	return outputFile, len(records), pages, err
}

// printFetchSummary prints the colored fetch summary lines.
func printFetchSummary(cfg *contract.Config, outputFile string, recordCount, pages int, duration time.Duration) error {
	if _, err := contract.SuccessColor.Printf("Saved: %s\n", outputFile); err != nil {
		return err
	}
	if cfg.FetchType == schema.JSONFetch {
		if _, err := contract.InfoColor.Printf("Records: %d\n", recordCount); err != nil {
			return err
		}
	}
	slog.Debug("fetch completed", "pages", pages, "duration", duration.Round(time.Millisecond))
	return nil
}

// loadBatch reads the configured input file and decodes each record into
// the traversal value model.
func loadBatch(cfg *contract.Config) ([]jsonval.Value, error) {
	if err := cfg.RequireInputFile(); err != nil {
		return nil, err
	}

	records, err := rawstore.LoadBatch(cfg.InputFile)
	if err != nil {
		return nil, err
	}

	batch := make([]jsonval.Value, len(records))
	for i, rec := range records {
		batch[i] = jsonval.Decode(rec)
	}
	return batch, nil
}
