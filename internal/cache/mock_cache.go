package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"quote-api/internal/store"
)

// MockCache is a mock implementation of Cache using testify/mock.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetQuotes(ctx context.Context, key string) ([]store.Quote, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Quote), args.Error(1)
}

func (m *MockCache) SetQuotes(ctx context.Context, key string, quotes []store.Quote, ttl time.Duration) error {
	args := m.Called(ctx, key, quotes, ttl)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
