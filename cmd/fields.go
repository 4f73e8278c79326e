package cmd

import (
	"incsight/core"
	"incsight/internal/contract"

	"github.com/spf13/cobra"
)

// fieldsCmd enumerates the field paths available in a batch file.
var fieldsCmd = &cobra.Command{
	Use:   "list-fields",
	Short: "List the field paths present in a fetched batch.",
	Long: `Enumerate every distinct field path found across a fetched incident batch.

Nested objects are flattened into dot-separated paths (for example
tags.env.value), so the output shows exactly the names that analyze
accepts for --group-by. Fields inside arrays are sampled from the first
element and reported without an index.

Use this to:
- Discover which fields your incidents actually carry
- Find the exact path for a nested tag before analyzing
- Spot schema drift between batches fetched at different times

Examples:
  # List fields in the newest batch
  incsight list-fields --input data/raw/incidents_20251031T140005Z.json

  # Machine-readable output for scripting
  incsight list-fields --input batch.json --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteListFields(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list fields", err)
		}
	},
}
