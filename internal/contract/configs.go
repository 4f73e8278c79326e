package contract

import (
	"fmt"
	"strings"
	"time"

	"incsight/schema"
)

// Default values for configuration.
const (
	DefaultAuthURL  = "https://auth.squadcast.com/oauth/access-token"
	DefaultBaseAPI  = "https://api.squadcast.com/v3"
	DefaultDataDir  = "data"
	DefaultWindow   = "30 days"
	DefaultGroupBy  = "service"
	DefaultTopN     = 10
	DefaultRunLimit = 20
	MaxTopN         = 1000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for one invocation.
// This struct remains the "final, validated" config.
type Config struct {
	RefreshToken string
	AuthURL      string
	BaseAPI      string

	StartTime time.Time
	EndTime   time.Time
	Team      string // empty means the team filter is omitted
	Assignee  string
	Tags      string // single key=value pair, or empty
	Status    string
	FetchType schema.FetchType

	InputFile string
	GroupBy   string
	TopN      int
	CSVOut    string

	Output     schema.OutputMode
	OutputFile string
	DataDir    string
	Debug      bool
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	RefreshToken     string `mapstructure:"refresh-token"`
	AuthURL          string `mapstructure:"auth-url"`
	BaseAPI          string `mapstructure:"base-api"`
	Start            string `mapstructure:"start"`
	End              string `mapstructure:"end"`
	Window           string `mapstructure:"window"`
	Team             string `mapstructure:"team"`
	Assignee         string `mapstructure:"assignee"`
	Tags             string `mapstructure:"tags"`
	Status           string `mapstructure:"status"`
	Input            string `mapstructure:"input"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	DataDir          string `mapstructure:"data-dir"`
	Debug            bool   `mapstructure:"debug"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from fetchCmd.Flags() ---
	FetchType string `mapstructure:"type"`

	// --- Fields from analyzeCmd.Flags() ---
	GroupBy string `mapstructure:"group-by"`
	Top     int    `mapstructure:"top"`
	CSVOut  string `mapstructure:"csv-out"`
}

// FetchFilter is the immutable set of filters for one fetch call, translated
// to query parameters by the API client. Empty optional fields are omitted
// from the outgoing request.
type FetchFilter struct {
	StartTime time.Time
	EndTime   time.Time
	Team      string
	Assignee  string
	Tags      string
	Status    string
}

// Filter assembles the fetch filter from the validated config.
func (c *Config) Filter() FetchFilter {
	return FetchFilter{
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Team:      c.Team,
		Assignee:  c.Assignee,
		Tags:      c.Tags,
		Status:    c.Status,
	}
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryBackend(cfg, input); err != nil {
		return err
	}
	return nil
}

// RequireCredential checks that the refresh credential is present. Commands
// that talk to the API call this before any network work.
func (c *Config) RequireCredential() error {
	if strings.TrimSpace(c.RefreshToken) == "" {
		return fmt.Errorf("%w: refresh-token is required (set it in .incsight.yaml or SQUADCAST_REFRESH_TOKEN)", ErrConfiguration)
	}
	return nil
}

// RequireInputFile checks that an input batch file was supplied.
func (c *Config) RequireInputFile() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("%w: --input is required", ErrInput)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("%w: history-db-connect is required when using %s backend", ErrConfiguration, backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("%w: MySQL connection string must contain '@tcp(' for host:port specification", ErrConfiguration)
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("%w: MySQL connection string must contain '/' followed by database name", ErrConfiguration)
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%w: history-db-connect is required when using %s backend", ErrConfiguration, backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("%w: PostgreSQL connection string must contain 'host=' parameter", ErrConfiguration)
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("%w: PostgreSQL connection string must contain 'dbname=' parameter", ErrConfiguration)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-time related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.RefreshToken = strings.TrimSpace(input.RefreshToken)
	cfg.AuthURL = strings.TrimSpace(input.AuthURL)
	cfg.BaseAPI = strings.TrimRight(strings.TrimSpace(input.BaseAPI), "/")
	cfg.Assignee = strings.TrimSpace(input.Assignee)
	cfg.Status = strings.TrimSpace(input.Status)
	cfg.InputFile = strings.TrimSpace(input.Input)
	cfg.GroupBy = strings.TrimSpace(input.GroupBy)
	cfg.CSVOut = strings.TrimSpace(input.CSVOut)
	cfg.OutputFile = input.OutputFile
	cfg.DataDir = input.DataDir
	cfg.Debug = input.Debug

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("%w: invalid --color value: %v", ErrInput, err)
	}
	cfg.UseColors = colors

	// --- 1. Team Sentinel Resolution ---
	// 'none' drops the team filter entirely, overriding any configured default.
	cfg.Team = strings.TrimSpace(input.Team)
	if strings.EqualFold(cfg.Team, schema.TeamNone) {
		cfg.Team = ""
	}

	// --- 2. Tags Validation ---
	cfg.Tags = strings.TrimSpace(input.Tags)
	if cfg.Tags != "" {
		parts := strings.SplitN(cfg.Tags, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return fmt.Errorf("%w: --tags must be a single key=value pair (received %q)", ErrInput, input.Tags)
		}
	}

	// --- 3. TopN Validation ---
	if input.Top <= 0 || input.Top > MaxTopN {
		return fmt.Errorf("%w: --top must be greater than 0 and cannot exceed %d (received %d)", ErrInput, MaxTopN, input.Top)
	}
	cfg.TopN = input.Top

	// --- 4. Fetch Type and Output Validation ---
	cfg.FetchType = schema.FetchType(strings.ToLower(input.FetchType))
	if _, ok := schema.ValidFetchTypes[cfg.FetchType]; !ok {
		return fmt.Errorf("%w: invalid fetch type '%s'. must be json, csv", ErrInput, input.FetchType)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: invalid output format '%s'. must be text, csv, json", ErrInput, cfg.Output)
	}

	return nil
}

// processTimeRange handles the date parsing and time range validation. With
// no explicit start, the window duration anchors the start against the end.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now().UTC()
	cfg.EndTime = now

	window, err := ParseWindowDuration(input.Window)
	if err != nil {
		return fmt.Errorf("%w: invalid window duration '%s': %v", ErrInput, input.Window, err)
	}

	parseAbsolute := func(s string) (time.Time, error) {
		return time.Parse(DateTimeFormat, s)
	}

	// --- Process End Time first so the window can anchor against it ---
	if input.End != "" {
		t, err := parseAbsolute(input.End)
		if err == nil {
			cfg.EndTime = t
		} else {
			t, relErr := ParseRelativeTime(input.End, now)
			if relErr != nil {
				return fmt.Errorf("%w: invalid end date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", ErrInput, input.End, err)
			}
			cfg.EndTime = t
		}
	}

	cfg.StartTime = cfg.EndTime.Add(-window)

	// --- Process Start Time ---
	if input.Start != "" {
		t, err := parseAbsolute(input.Start)
		if err == nil {
			cfg.StartTime = t
		} else {
			t, relErr := ParseRelativeTime(input.Start, now)
			if relErr != nil {
				return fmt.Errorf("%w: invalid start date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", ErrInput, input.Start, err)
			}
			cfg.StartTime = t
		}
	}

	// --- Final Validation ---
	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("%w: start time (%s) cannot be after end time (%s)", ErrInput,
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// validateHistoryBackend validates the fetch history backend configuration.
func validateHistoryBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("%w: invalid history backend '%s'. must be sqlite, mysql, postgresql, none", ErrInput, input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}
