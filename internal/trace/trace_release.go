//go:build !dev

// Package trace records runtime traces in development builds.
// Release builds compile to no-ops.
package trace

import (
	"context"
	"io"
)

// EnvTrace names the file receiving the trace
const EnvTrace = "PSHIM_TRACE"

// Init is a no-op in release builds
func Init(_ io.Writer) func() {
	return func() {}
}

// Region is a no-op in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds
func Log(_ context.Context, _, _ string) {
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	return false
}
