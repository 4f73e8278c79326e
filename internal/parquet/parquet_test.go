package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incsight/schema"
)

func TestFetchRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	fileSchema := parquet.SchemaOf(new(FetchRun))
	require.NotNil(t, fileSchema)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"started_at",
		"finished_at",
		"status",
		"window_start",
		"window_end",
		"team",
		"record_count",
		"output_file",
		"error_text",
	}

	for _, colName := range expectedColumns {
		col, ok := fileSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteFetchRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "fetch_runs.parquet")

	// Get mock data
	data := MockFetchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteFetchRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[FetchRun](file)
	defer reader.Close()

	// Read all rows
	readData := make([]FetchRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	// Verify data integrity
	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].Status, readData[i].Status, "Status should match")
		assert.Equal(t, data[i].Team, readData[i].Team, "Team should match")
		assert.WithinDuration(t, data[i].StartedAt, readData[i].StartedAt, time.Nanosecond, "StartedAt should match within nanosecond precision")

		// Check nullable fields
		if data[i].FinishedAt == nil {
			assert.Nil(t, readData[i].FinishedAt, "FinishedAt should be nil")
		} else {
			require.NotNil(t, readData[i].FinishedAt, "FinishedAt should not be nil")
			assert.WithinDuration(t, *data[i].FinishedAt, *readData[i].FinishedAt, time.Nanosecond, "FinishedAt should match within nanosecond precision")
		}

		if data[i].RecordCount == nil {
			assert.Nil(t, readData[i].RecordCount, "RecordCount should be nil")
		} else {
			require.NotNil(t, readData[i].RecordCount, "RecordCount should not be nil")
			assert.Equal(t, *data[i].RecordCount, *readData[i].RecordCount, "RecordCount should match")
		}

		if data[i].OutputFile == nil {
			assert.Nil(t, readData[i].OutputFile, "OutputFile should be nil")
		} else {
			require.NotNil(t, readData[i].OutputFile, "OutputFile should not be nil")
			assert.Equal(t, *data[i].OutputFile, *readData[i].OutputFile, "OutputFile should match")
		}
	}
}

func TestWriteFetchRunsParquet_EmptyData(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_fetch_runs.parquet")

	// Write empty data
	err := WriteFetchRunsParquet([]FetchRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteFetchRunsParquet_InvalidPath(t *testing.T) {
	// Try to write to invalid path
	data := MockFetchRuns()
	err := WriteFetchRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestMockFetchRuns(t *testing.T) {
	data := MockFetchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")
	assert.Len(t, data, 3, "Should return 3 mock records")

	// Verify the structure of mock data
	assert.Equal(t, schema.RunSucceeded, data[0].Status)
	assert.NotNil(t, data[0].FinishedAt, "First record should have FinishedAt")
	assert.NotNil(t, data[0].RecordCount, "First record should have RecordCount")
	assert.NotNil(t, data[0].OutputFile, "First record should have OutputFile")

	// Failed record should carry the error text
	assert.Equal(t, schema.RunFailed, data[1].Status)
	assert.NotNil(t, data[1].ErrorText, "Second record should have ErrorText")

	// Third record should have nil nullable fields
	assert.Equal(t, schema.RunStarted, data[2].Status)
	assert.Nil(t, data[2].FinishedAt, "Third record should have nil FinishedAt")
	assert.Nil(t, data[2].RecordCount, "Third record should have nil RecordCount")
	assert.Nil(t, data[2].OutputFile, "Third record should have nil OutputFile")
}

func TestConvertFetchRunRecords(t *testing.T) {
	finished := time.Date(2025, 10, 1, 8, 0, 45, 0, time.UTC)
	count := int32(12)
	output := "data/raw/incidents_20251001T080045Z.json"

	records := []schema.FetchRunRecord{
		{
			RunID:       "run-a",
			StartedAt:   finished.Add(-45 * time.Second),
			FinishedAt:  &finished,
			Status:      schema.RunSucceeded,
			WindowStart: finished.Add(-24 * time.Hour),
			WindowEnd:   finished,
			Team:        "team-1",
			RecordCount: &count,
			OutputFile:  &output,
		},
		{
			RunID:     "run-b",
			StartedAt: finished,
			Status:    schema.RunStarted,
		},
	}

	converted := ConvertFetchRunRecords(records)
	require.Len(t, converted, 2)
	assert.Equal(t, "run-a", converted[0].RunID)
	assert.Equal(t, &count, converted[0].RecordCount)
	assert.Equal(t, "team-1", converted[0].Team)
	assert.Nil(t, converted[1].FinishedAt)
	assert.Equal(t, schema.RunStarted, converted[1].Status)
}

func TestNullableFieldHandling(t *testing.T) {
	// Test that we can create structs with various combinations of null fields
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "nullable_test.parquet")

	now := time.Now()
	finished := now.Add(30 * time.Second)
	count := int32(250)
	output := "data/raw/incidents.json"
	errText := "authentication error: token exchange rejected"

	testData := []FetchRun{
		// All fields populated
		{
			RunID:       "run-1",
			StartedAt:   now,
			FinishedAt:  &finished,
			Status:      schema.RunSucceeded,
			WindowStart: now.Add(-time.Hour),
			WindowEnd:   now,
			Team:        "team-1",
			RecordCount: &count,
			OutputFile:  &output,
			ErrorText:   &errText,
		},
		// All nullable fields are nil
		{
			RunID:       "run-2",
			StartedAt:   now,
			FinishedAt:  nil,
			Status:      schema.RunStarted,
			WindowStart: now.Add(-time.Hour),
			WindowEnd:   now,
			RecordCount: nil,
			OutputFile:  nil,
			ErrorText:   nil,
		},
	}

	// Write and read back
	err := WriteFetchRunsParquet(testData, outputPath)
	require.NoError(t, err)

	// Read back and verify
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[FetchRun](file)
	defer reader.Close()

	readData := make([]FetchRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	assert.Equal(t, len(testData), n)

	// Verify first record has all fields
	assert.NotNil(t, readData[0].FinishedAt)
	assert.NotNil(t, readData[0].RecordCount)
	assert.NotNil(t, readData[0].OutputFile)
	assert.NotNil(t, readData[0].ErrorText)

	// Verify second record has nil nullable fields
	assert.Nil(t, readData[1].FinishedAt)
	assert.Nil(t, readData[1].RecordCount)
	assert.Nil(t, readData[1].OutputFile)
	assert.Nil(t, readData[1].ErrorText)
}
