package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Exists(ctx context.Context, collection, key string) (bool, error) {
	args := m.Called(ctx, collection, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, collection, key string) (Record, bool, error) {
	args := m.Called(ctx, collection, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(Record), args.Bool(1), args.Error(2)
}

func (m *MockStore) Query(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	args := m.Called(ctx, collection, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Document), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, collection, key string, rec Record) error {
	args := m.Called(ctx, collection, key, rec)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, collection, key string) error {
	args := m.Called(ctx, collection, key)
	return args.Error(0)
}
