package contract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ErrorColor   = color.New(color.FgRed, color.Bold) // errorColor marks failures.
	SuccessColor = color.New(color.FgGreen)           // successColor marks saved artifacts.
	InfoColor    = color.New(color.FgCyan)            // infoColor marks record counts and summaries.
	NoticeColor  = color.New(color.FgYellow)          // noticeColor marks debug echoes and warnings.
)

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = ErrorColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// InitDebugLogging configures the default slog logger on stderr. Debug mode
// surfaces request-level diagnostics; otherwise only warnings get through.
func InitDebugLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for fetch
// history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".incsight_history.db"
	}
	return filepath.Join(homeDir, ".incsight_history.db")
}

// TruncateValue truncates a field value to a maximum width with an ellipsis
// suffix, so one oversized grouping key cannot blow out the table layout.
// Requires maxWidth > 3 to leave room for the ellipsis plus content.
func TruncateValue(value string, maxWidth int) string {
	runes := []rune(value)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return value
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
