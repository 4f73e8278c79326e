package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockIncidentAPI is an autogenerated mock type for the IncidentAPI type.
type MockIncidentAPI struct {
	mock.Mock
}

var _ IncidentAPI = &MockIncidentAPI{} // Compile-time check

// ExchangeToken implements the IncidentAPI interface.
func (m *MockIncidentAPI) ExchangeToken(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	token, _ := ret.Get(0).(string)
	return token, ret.Error(1)
}

// FetchIncidents implements the IncidentAPI interface.
func (m *MockIncidentAPI) FetchIncidents(ctx context.Context, filter FetchFilter) ([]map[string]any, int, error) {
	ret := m.Called(ctx, filter)
	records, _ := ret.Get(0).([]map[string]any)
	pages, _ := ret.Get(1).(int)
	return records, pages, ret.Error(2)
}

// DownloadCSV implements the IncidentAPI interface.
func (m *MockIncidentAPI) DownloadCSV(ctx context.Context, filter FetchFilter) ([]byte, error) {
	ret := m.Called(ctx, filter)
	content, _ := ret.Get(0).([]byte)
	return content, ret.Error(1)
}
