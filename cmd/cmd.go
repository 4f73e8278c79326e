// Package cmd defines the command-line interface for incsight.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"incsight/internal/contract"
	"incsight/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("refresh-token", "", "Squadcast refresh token used for authentication")
	rootCmd.PersistentFlags().String("auth-url", contract.DefaultAuthURL, "Token exchange endpoint")
	rootCmd.PersistentFlags().String("base-api", contract.DefaultBaseAPI, "Base URL for the Squadcast API")
	rootCmd.PersistentFlags().String("start", "", "Window start in ISO8601 or time ago (e.g. '7 days ago')")
	rootCmd.PersistentFlags().String("end", "", "Window end in ISO8601 or time ago (defaults to now)")
	rootCmd.PersistentFlags().String("window", contract.DefaultWindow, "Window duration used when --start is not set")
	rootCmd.PersistentFlags().StringP("team", "t", "", "Team ID filter ('none' drops the team filter entirely)")
	rootCmd.PersistentFlags().String("assignee", "", "Assignee ID filter")
	rootCmd.PersistentFlags().String("tags", "", "Tag filter as a single key=value pair")
	rootCmd.PersistentFlags().String("status", "", "Incident status filter passed through to the API")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to a fetched incident batch file")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory where fetched batches are stored")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Fetch history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of fetchCmd to Viper
	fetchCmd.Flags().String("type", string(schema.JSONFetch), "Fetch format: json or csv")
	if err := viper.BindPFlags(fetchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding fetch flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().StringP("group-by", "g", contract.DefaultGroupBy, "Field path or alias to group incidents by")
	analyzeCmd.Flags().IntP("top", "n", contract.DefaultTopN, "Number of top values to display")
	analyzeCmd.Flags().String("csv-out", "", "Optional path for an additional CSV export of the result")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().IntP("limit", "l", contract.DefaultRunLimit, "Number of fetch runs to display")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
