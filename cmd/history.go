package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"incsight/internal/contract"
	"incsight/internal/fetchlog"
	"incsight/internal/outwriter"
	"incsight/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by list and export commands)
	outputMode := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[outputMode]; !ok {
		return fmt.Errorf("%w: invalid output format '%s'. must be text, csv, json", contract.ErrInput, viper.GetString("output"))
	}
	outputFile := viper.GetString("output-file")

	// Initialize the history store with the loaded config
	if err := fetchlog.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize fetch history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = outputMode
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on fetch run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by data commands. This avoids credential checks
// and complex config processing for simple bookkeeping operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the fetch run history store",
	Long: `Manage the record of fetch runs kept alongside your incident data.

Every fetch records its time window, team filter, record count and outcome,
giving you an audit trail of what was downloaded and when. Incident content
itself is never stored here, only run metadata.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history store statistics
  list    - Show recent fetch runs
  export  - Export run history to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check history status
  incsight history status

  # Review the last few fetches
  incsight history list --limit 5`,
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show detailed information about the fetch run history store.

Displays:
- Backend type and connection status
- Total number of recorded fetch runs
- Last and oldest run timestamps
- History database size

Use this to:
- Verify run tracking is enabled and working
- Monitor history growth over time
- Check database connection health

Examples:
  # Check history status
  incsight history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := fetchlog.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		fetchlog.PrintHistoryStatus(status)
	},
}

// historyListCmd lists recent fetch runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display recent fetch runs, newest first",
	Long: `List the most recent fetch runs recorded in the history store.

Each row shows when the run started, its outcome, the requested time
window, the team filter, how many records were saved and where.

Use this to:
- Confirm overnight fetches actually ran
- Find the output file for a particular time window
- Spot failed runs and their error messages

Examples:
  # Show the most recent runs
  incsight history list

  # Show the last 50 runs as JSON
  incsight history list --limit 50 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("limit")
		runs, err := fetchlog.Manager.GetHistoryStore().ListRuns(limit)
		if err != nil {
			contract.LogFatal("Failed to list fetch runs", err)
		}
		if err := outwriter.WriteHistoryRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to write fetch runs", err)
		}
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export fetch run history to Parquet for BI tools and analytics",
	Long: `Export all recorded fetch runs to Parquet format for use with analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Use cases:
- Fetch reliability reporting across weeks of runs
- Correlating incident volume with fetch windows
- Custom dashboards over run metadata

Examples:
  # Export all run history
  incsight history export --output-file history-data.parquet

  # Use with DuckDB for analysis
  incsight history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.fetch_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := fetchlog.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export fetch history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded fetch runs",
	Long: `Delete every fetch run recorded in the history store.

The incident batch files under the data directory are not touched; only
the run metadata table is emptied.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting history after testing
- The tracked runs no longer match the batches on disk
- Database storage needs reclaiming

Examples:
  # Export before clearing
  incsight history export --output-file backup.parquet
  incsight history clear

  # Clear and start fresh
  incsight history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := fetchlog.Manager.GetHistoryStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear fetch history", err)
		}
		fmt.Println("Fetch history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the fetch history store.

Migrations allow:
- Upgrading to new schema versions when incsight is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  incsight history migrate

  # Migrate to specific version
  incsight history migrate --target-version 1

  # Rollback to previous version
  incsight history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := fetchlog.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
