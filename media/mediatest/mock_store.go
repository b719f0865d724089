// Package mediatest provides a mock image store for tests.
package mediatest

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *MockStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
