// Package rawstore persists fetched incident exports under the data
// directory and loads them back for analysis.
package rawstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"incsight/internal/contract"
)

const (
	rawSubdir       = "raw"
	processedSubdir = "processed"

	// stampLayout names export files by UTC fetch time.
	stampLayout = "20060102T150405Z"
)

// Store manages the on-disk layout for incident exports. Raw API payloads
// go under <dataDir>/raw, derived outputs under <dataDir>/processed.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir. Directories are created lazily on
// the first save.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// RawDir returns the directory holding raw exports.
func (s *Store) RawDir() string {
	return filepath.Join(s.dataDir, rawSubdir)
}

// ProcessedDir returns the directory for derived outputs.
func (s *Store) ProcessedDir() string {
	return filepath.Join(s.dataDir, processedSubdir)
}

// EnsureDirs creates the raw and processed directories.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.RawDir(), s.ProcessedDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: cannot create data directory %s: %v", contract.ErrConfiguration, dir, err)
		}
	}
	return nil
}

// SaveBatch writes records as an indented JSON array and returns the file
// path. The file only appears once the whole batch is in hand; a failed
// fetch never leaves a partial export behind.
func (s *Store) SaveBatch(records []map[string]any, now time.Time) (string, error) {
	if records == nil {
		records = []map[string]any{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding incident batch: %w", err)
	}
	return s.saveRaw(data, now, "json")
}

// SaveCSV writes the API's CSV export bytes verbatim and returns the file
// path.
func (s *Store) SaveCSV(data []byte, now time.Time) (string, error) {
	return s.saveRaw(data, now, "csv")
}

func (s *Store) saveRaw(data []byte, now time.Time, ext string) (string, error) {
	if err := s.EnsureDirs(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("incidents_%s.%s", now.UTC().Format(stampLayout), ext)
	path := filepath.Join(s.RawDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// LoadBatch reads a JSON export file. The payload is either a bare array of
// records or a {"data": [...]} envelope as returned by the API.
func LoadBatch(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read input file %s: %v", contract.ErrInput, path, err)
	}
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contract.ErrDataFormat, path, err)
	}
	return records, nil
}

func decodeRecords(raw []byte) ([]map[string]any, error) {
	payload := bytes.TrimSpace(raw)
	if len(payload) > 0 && payload[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, err
		}
		if envelope.Data == nil {
			return nil, errors.New("expected a JSON array of records")
		}
		payload = envelope.Data
	}

	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}
