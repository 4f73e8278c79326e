package fetchlog

import (
	"time"

	"github.com/stretchr/testify/mock"

	"incsight/internal/contract"
	"incsight/schema"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startedAt, windowStart, windowEnd time.Time, team string) (string, error) {
	args := m.Called(startedAt, windowStart, windowEnd, team)
	return args.String(0), args.Error(1)
}

// FinishRunSuccess implements the HistoryStore interface.
func (m *MockHistoryStore) FinishRunSuccess(runID string, finishedAt time.Time, recordCount int, outputFile string) error {
	args := m.Called(runID, finishedAt, recordCount, outputFile)
	return args.Error(0)
}

// FinishRunFailure implements the HistoryStore interface.
func (m *MockHistoryStore) FinishRunFailure(runID string, finishedAt time.Time, errorText string) error {
	args := m.Called(runID, finishedAt, errorText)
	return args.Error(0)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(limit int) ([]schema.FetchRunRecord, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.FetchRunRecord)
	return runs, args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.FetchRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.FetchRunRecord)
	return runs, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
