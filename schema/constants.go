package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// FetchType represents the payload format requested from the export API.
	FetchType string

	// DatabaseBackend represents the database backend for fetch history.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All fetch types supported.
const (
	JSONFetch FetchType = "json" // default
	CSVFetch  FetchType = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// TeamNone is the sentinel that drops the team filter entirely,
// overriding any configured default team.
const TeamNone = "none"

// MissingBucket is the grouping key for records where the group-by
// field resolves to no value. Counting these keeps aggregation totals
// equal to the batch size.
const MissingBucket = "missing"

// PageSize is the fixed page size for paginated incident listing.
const PageSize = 100

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidFetchTypes lists all valid fetch types.
var ValidFetchTypes = map[FetchType]struct{}{
	JSONFetch: {},
	CSVFetch:  {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
