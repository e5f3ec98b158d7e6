package game

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"
)

// MockSaveStore is a mock implementation of SaveStore
type MockSaveStore struct {
	mock.Mock
}

func (m *MockSaveStore) Upsert(ctx context.Context, snap Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSaveStore) List(ctx context.Context) ([]Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Snapshot), args.Error(1)
}

func (m *MockSaveStore) GetByIndex(ctx context.Context, index int) (Snapshot, error) {
	args := m.Called(ctx, index)
	return args.Get(0).(Snapshot), args.Error(1)
}

func (m *MockSaveStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
