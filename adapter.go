// Package vfsh contains core domain types and interfaces for the vfsh virtual
// filesystem shell
package vfsh

import (
	"context"
	"io"
)

// SeedAdapter retrieves the raw seed document from a single source.
// Instances are 1:1 with a seed location (local path, URL, ...)
type SeedAdapter interface {
	// Opens the seed and returns a Reader. Caller must Close it.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Source returns the location the adapter reads from
	Source() string
}

// AdapterProvider is a factory for concrete [SeedAdapter] implementations
// for a given source location.
// Implementations should handle resource management (clients, pooling etc) for its adapters
type AdapterProvider interface {
	NewAdapter(src string) (SeedAdapter, error)
}
