package cmd

import (
	"incsight/core"
	"incsight/internal/contract"

	"github.com/spf13/cobra"
)

// authCmd exchanges the refresh credential for an access token.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Exchange the refresh token for a Squadcast access token.",
	Long: `Exchange the configured refresh token for a short-lived access token.

The access token is printed on stdout by itself so it can be piped into
other tools. When the token carries an expiry claim, a human-readable
expiry note is printed on stderr.

Use this to:
- Verify that your refresh token is valid before fetching
- Feed the Squadcast API from scripts and one-off curl calls
- Debug authentication problems in isolation

Examples:
  # Print an access token
  incsight auth

  # Call the API directly with the token
  curl -H "Authorization: Bearer $(incsight auth)" https://api.squadcast.com/v3/incidents`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuth(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot exchange token", err)
		}
	},
}
