package mocks

import (
	"context"
	"io"

	"github.com/brettbedarf/vfsh"
	"github.com/stretchr/testify/mock"
)

// MockSeedAdapter implements vfsh.SeedAdapter for testing across packages
type MockSeedAdapter struct {
	mock.Mock
}

func (m *MockSeedAdapter) Open(ctx context.Context) (io.ReadCloser, error) {
	args := m.Called(ctx)

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func(context.Context) io.ReadCloser); ok {
		return fn(ctx), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockSeedAdapter) Source() string {
	args := m.Called()
	return args.String(0)
}

var _ vfsh.SeedAdapter = (*MockSeedAdapter)(nil)

// MockAdapterProvider implements vfsh.AdapterProvider for testing across packages
type MockAdapterProvider struct {
	mock.Mock
}

func (m *MockAdapterProvider) NewAdapter(src string) (vfsh.SeedAdapter, error) {
	args := m.Called(src)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(vfsh.SeedAdapter), args.Error(1)
}

var _ vfsh.AdapterProvider = (*MockAdapterProvider)(nil)

// ReadCloser records whether Close was called on a wrapped reader
type ReadCloser struct {
	io.Reader
	Closed bool
}

func (r *ReadCloser) Close() error {
	r.Closed = true
	return nil
}
