package cmd

import (
	"incsight/core"
	"incsight/internal/contract"

	"github.com/spf13/cobra"
)

// fetchCmd downloads incidents for the configured time window.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download incidents for a time window into the data directory.",
	Long: `Authenticate and download every incident in the requested time window.

Pages through the incident export endpoint until the window is exhausted,
then writes the full batch as a single timestamped file under the data
directory. Nothing is written when any page fails, so a fetch never leaves
a partial batch behind. Each run is also recorded in the fetch history
store for later inspection.

Filters narrow the download:
- --team        restrict to one team ('none' removes the filter entirely)
- --assignee    restrict to incidents assigned to one user
- --tags        restrict to a single key=value tag pair
- --status      restrict to one incident status

Examples:
  # Fetch the default window (last 30 days)
  incsight fetch

  # Fetch one week of incidents for a team
  incsight fetch --start "7 days ago" --team 5f8c4a9e21b0

  # Fetch an explicit window
  incsight fetch --start 2025-10-01T00:00:00Z --end 2025-10-31T00:00:00Z

  # Ask the API for its CSV export instead of JSON
  incsight fetch --type csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFetch(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot fetch incidents", err)
		}
	},
}
