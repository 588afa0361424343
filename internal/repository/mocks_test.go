package repository

import (
	"context"

	"vitalink/internal/gateway"

	"github.com/stretchr/testify/mock"
)

type MockRowAPI struct {
	mock.Mock
}

func (m *MockRowAPI) Select(ctx context.Context, collection string, filter gateway.Filter) ([]gateway.Row, error) {
	args := m.Called(ctx, collection, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.Row), args.Error(1)
}

func (m *MockRowAPI) Insert(ctx context.Context, collection string, rows []gateway.Row) ([]gateway.Row, error) {
	args := m.Called(ctx, collection, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.Row), args.Error(1)
}

func (m *MockRowAPI) Upsert(ctx context.Context, collection string, rows []gateway.Row, conflictKey string) ([]gateway.Row, error) {
	args := m.Called(ctx, collection, rows, conflictKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.Row), args.Error(1)
}

func (m *MockRowAPI) Delete(ctx context.Context, collection string, filter gateway.Filter) error {
	args := m.Called(ctx, collection, filter)
	return args.Error(0)
}

func (m *MockRowAPI) RPC(ctx context.Context, fn string, params gateway.Row) ([]byte, error) {
	args := m.Called(ctx, fn, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
