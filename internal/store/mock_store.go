package store

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertQuote(ctx context.Context, text string, generatedAt time.Time, theme string) (int64, error) {
	args := m.Called(ctx, text, generatedAt, theme)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListQuotes(ctx context.Context, limit int) ([]Quote, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Quote), args.Error(1)
}

func (m *MockStore) AllQuotes(ctx context.Context) ([]Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Quote), args.Error(1)
}

func (m *MockStore) DeleteQuote(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
