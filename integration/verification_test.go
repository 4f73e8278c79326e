//go:build integration

// Package integration contains integration tests for incsight.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleBatch holds incidents with a known value distribution, including a
// null and an absent service so the missing bucket is exercised end to end.
const sampleBatch = `[
	{"id": "1", "service": "api", "tags": {"env": {"value": "prod"}}},
	{"id": "2", "service": "api"},
	{"id": "3", "service": "api"},
	{"id": "4", "service": "web"},
	{"id": "5", "service": "web"},
	{"id": "6", "service": "db"},
	{"id": "7", "service": null},
	{"id": "8"}
]`

// buildIncsight builds the CLI into a temp location and returns its path.
func buildIncsight(t *testing.T) string {
	t.Helper()

	incsightPath := filepath.Join(t.TempDir(), "incsight")
	buildCmd := exec.Command("go", "build", "-o", incsightPath, "./cmd/incsight")
	buildCmd.Dir = ".." // Project root
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))
	return incsightPath
}

// runIncsight runs the built binary and fails the test on a non-zero exit.
func runIncsight(t *testing.T, incsightPath string, args ...string) {
	t.Helper()

	cmd := exec.Command(incsightPath, args...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "Command failed: %s\nOutput: %s", cmd.String(), string(output))
}

// TestAnalyzeVerification runs analyze over a known batch and verifies the
// counts against an independent tally of the same file.
func TestAnalyzeVerification(t *testing.T) {
	incsightPath := buildIncsight(t)

	workDir := t.TempDir()
	batchPath := filepath.Join(workDir, "batch.json")
	require.NoError(t, os.WriteFile(batchPath, []byte(sampleBatch), 0o644))
	resultPath := filepath.Join(workDir, "result.csv")

	runIncsight(t, incsightPath,
		"analyze",
		"--input", batchPath,
		"--group-by", "service",
		"--top", "10",
		"--output", "csv",
		"--output-file", resultPath,
		"--history-backend", "none",
	)

	// Parse the CSV the CLI produced
	gotCounts := parseAnalyzeCSV(t, resultPath)

	// Tally the same batch independently
	wantCounts := countServiceValues(t, batchPath)
	assert.Equal(t, wantCounts, gotCounts)

	// Counts must reconcile with the batch size
	total := 0
	for _, c := range gotCounts {
		total += c
	}
	assert.Equal(t, 8, total)
}

// TestListFieldsVerification runs list-fields over a known batch and checks
// the flattened paths against the ones the batch was built with.
func TestListFieldsVerification(t *testing.T) {
	incsightPath := buildIncsight(t)

	workDir := t.TempDir()
	batchPath := filepath.Join(workDir, "batch.json")
	require.NoError(t, os.WriteFile(batchPath, []byte(sampleBatch), 0o644))
	resultPath := filepath.Join(workDir, "fields.json")

	runIncsight(t, incsightPath,
		"list-fields",
		"--input", batchPath,
		"--output", "json",
		"--output-file", resultPath,
		"--history-backend", "none",
	)

	raw, err := os.ReadFile(resultPath)
	require.NoError(t, err)

	var result struct {
		Paths []string `json:"paths"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.Equal(t, []string{"id", "service", "tags.env.value"}, result.Paths)
	assert.Equal(t, 3, result.Count)
}

// parseAnalyzeCSV reads a value,count CSV into a map.
func parseAnalyzeCSV(t *testing.T, path string) map[string]int {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, []string{"value", "count"}, rows[0])

	counts := make(map[string]int)
	for _, row := range rows[1:] {
		require.Len(t, row, 2)
		n, err := strconv.Atoi(row[1])
		require.NoError(t, err)
		counts[row[0]] = n
	}
	return counts
}

// countServiceValues tallies the service field straight from the JSON file,
// treating null and absent values as missing.
func countServiceValues(t *testing.T, path string) map[string]int {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))

	counts := make(map[string]int)
	for _, rec := range records {
		v, ok := rec["service"]
		if !ok || v == nil {
			counts["missing"]++
			continue
		}
		counts[fmt.Sprintf("%v", v)]++
	}
	return counts
}
