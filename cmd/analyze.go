package cmd

import (
	"incsight/core"
	"incsight/internal/contract"

	"github.com/spf13/cobra"
)

// analyzeCmd computes the top values of a field across a batch.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show the most frequent values of a field across a batch.",
	Long: `Count how often each value of a field appears across a fetched batch.

Groups every incident by the requested field, counts occurrences and
prints the top values as a table. Records where the field is null or
absent are counted together under the 'missing' bucket, so the counts
always add up to the batch size.

The --group-by argument accepts shorthand: a bare segment like 'env'
resolves against the flattened field paths, preferring the tag form
tags.env.value when it exists. Run list-fields to see every candidate.

Examples:
  # Which services page the most (default grouping)
  incsight analyze --input batch.json

  # Top 5 environments by tag
  incsight analyze --input batch.json --group-by env --top 5

  # Group by a fully qualified nested path
  incsight analyze --input batch.json --group-by assignee.name

  # Keep a CSV copy of the result next to the table
  incsight analyze --input batch.json --csv-out exports/by-service.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot analyze batch", err)
		}
	},
}
