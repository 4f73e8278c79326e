package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestTruncateValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		maxWidth int
		expected string
	}{
		{
			name:     "short value untouched",
			value:    "api",
			maxWidth: 20,
			expected: "api",
		},
		{
			name:     "exact width untouched",
			value:    "abcdef",
			maxWidth: 6,
			expected: "abcdef",
		},
		{
			name:     "long value truncated with ellipsis",
			value:    "a-very-long-service-name-from-somewhere",
			maxWidth: 10,
			expected: "a-very-...",
		},
		{
			name:     "width too small leaves value alone",
			value:    "abcdef",
			maxWidth: 3,
			expected: "abcdef",
		},
		{
			name:     "multibyte runes respected",
			value:    "面面面面面面面面",
			maxWidth: 6,
			expected: "面面面...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateValue(tt.value, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", "yes", true, false},
		{"true upper", "TRUE", true, false},
		{"one", "1", true, false},
		{"no", "no", false, false},
		{"false mixed", "False", false, false},
		{"zero", "0", false, false},
		{"garbage", "maybe", false, true},
		{"empty", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".incsight_history.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}
