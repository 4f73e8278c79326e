package fetchlog

import (
	"fmt"
	"sync"

	"incsight/internal/contract"
	"incsight/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &HistoryStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitHistory initializes the global history manager.
// backend can be empty to disable run tracking.
func InitHistory(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}

		store, err := NewHistoryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize fetch history: %w", err)
			return
		}

		// Assign to global manager
		Manager.history = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called from main before the exit code is decided
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}
