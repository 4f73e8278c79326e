package contract

import "errors"

// Error kinds surfaced to the user. Every failure path wraps exactly one of
// these so callers can distinguish the class with errors.Is while the
// message carries the specifics.
var (
	// ErrConfiguration marks a missing or unusable setting, detected
	// before any network call.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication marks a rejected token exchange, distinct from
	// transport failures.
	ErrAuthentication = errors.New("authentication error")

	// ErrTransport marks a network failure or non-success HTTP status.
	ErrTransport = errors.New("transport error")

	// ErrInput marks malformed flag values or unreadable input files.
	ErrInput = errors.New("input error")

	// ErrDataFormat marks an input file that is not a sequence of JSON
	// mappings.
	ErrDataFormat = errors.New("data format error")
)
