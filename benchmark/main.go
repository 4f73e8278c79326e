// Package main provides a performance benchmarking tool for the incsight CLI.
// It measures execution times across different batch sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - incsight binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic batches are generated
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Batch    string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	Runs       int
	BatchSizes map[string]int
	BatchOrder []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		BatchSizes: map[string]int{
			"small":  1000,
			"medium": 20000,
			"large":  200000,
		},
		BatchOrder: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating synthetic batches...\n")
	if err := generateBatches(config); err != nil {
		fmt.Printf("Failed to generate batches: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the incsight binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if incsight is available
	if _, err := exec.LookPath("incsight"); err != nil {
		return fmt.Errorf("incsight binary not found in PATH")
	}

	// Check if the work directory exists
	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// generateBatches writes one synthetic incident batch file per configured size.
func generateBatches(config BenchmarkConfig) error {
	rng := rand.New(rand.NewSource(42))
	services := []string{"checkout", "billing", "search", "auth", "notifications", "reporting"}
	statuses := []string{"triggered", "acknowledged", "resolved"}
	envs := []string{"prod", "staging", "dev"}

	for _, name := range config.BatchOrder {
		size := config.BatchSizes[name]
		records := make([]map[string]any, size)
		for i := range size {
			rec := map[string]any{
				"id":         fmt.Sprintf("inc-%06d", i),
				"service":    services[rng.Intn(len(services))],
				"status":     statuses[rng.Intn(len(statuses))],
				"created_at": time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Second).Format(time.RFC3339),
				"tags": map[string]any{
					"env": map[string]any{"value": envs[rng.Intn(len(envs))]},
				},
			}
			// A slice of records misses the field entirely to exercise the missing bucket
			if rng.Intn(20) == 0 {
				delete(rec, "service")
			}
			records[i] = rec
		}

		path := batchPath(config, name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create batch %s: %w", path, err)
		}
		if err := json.NewEncoder(file).Encode(records); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to encode batch %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close batch %s: %w", path, err)
		}
		fmt.Printf("  %s: %d records\n", path, size)
	}
	return nil
}

func batchPath(config BenchmarkConfig, name string) string {
	return filepath.Join(config.WorkDir, fmt.Sprintf("batch_%s.json", name))
}

// runBenchmarks executes all benchmark tests across configured batch sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d batches, %v timeout, %d runs each\n",
		len(config.BatchOrder), config.Timeout, config.Runs)

	for _, name := range config.BatchOrder {
		fmt.Printf("Benchmarking %s batch\n", name)
		input := batchPath(config, name)

		// Top-values aggregation
		args := []string{"analyze", "--input", input, "--group-by", "service", "--top", "10", "--history-backend", "none"}
		results = append(results, runBenchmarkSuite(config, name, "analyze", args))

		// Field enumeration
		args = []string{"list-fields", "--input", input, "--history-backend", "none"}
		results = append(results, runBenchmarkSuite(config, name, "list-fields", args))
	}

	return results
}

// runBenchmarkSuite runs one command repeatedly and splits cold/warm timings
func runBenchmarkSuite(config BenchmarkConfig, batch, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s batch (%d runs)\n", command, batch, config.Runs)

	coldTime, warmTimes := runBenchmark(config, command, args)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Batch:    batch,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes an incsight command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("incsight", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "list-fields" {
		return strings.Contains(outputStr, "Total fields:")
	}
	return strings.Contains(outputStr, "Showing top")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/incsight_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"batch", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Batch, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Top-Values Aggregation:")
	printCommandSummary(results, "list-fields", "Field Enumeration:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Batch, result.ColdTime, result.WarmTime)
		}
	}
}
