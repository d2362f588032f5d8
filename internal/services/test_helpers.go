package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tabprep/internal/dataprocessing"
)

// MockTableWriter is a mock for the TableWriter interface
type MockTableWriter struct {
	mock.Mock
}

func (m *MockTableWriter) WriteTable(ctx context.Context, t *dataprocessing.Table) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}
