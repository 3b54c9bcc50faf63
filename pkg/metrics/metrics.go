// Package metrics defines the metrics surface the facade and block
// allocator call through, plus the package-level registry gate that makes
// metrics collection opt-in. Concrete collectors live in
// pkg/metrics/prometheus; this package only holds the interfaces and the
// gate so that importing it never pulls in the Prometheus client for
// callers that don't want it.
package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
	enabled  atomic.Bool
)

// InitRegistry creates and installs the Prometheus registry metrics
// collectors register into, and flips the package into the enabled state.
// Call this once at startup before constructing any metrics collector.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	enabled.Store(true)
	return registry
}

// IsEnabled reports whether InitRegistry has been called. Metrics
// constructors check this and return nil when metrics are disabled, so
// every call site must check a metrics collector for nil before using it.
func IsEnabled() bool {
	return enabled.Load()
}

// GetRegistry returns the active registry, or nil if metrics are disabled.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// Reset tears down the registry and disables metrics collection. Intended
// for test isolation between cases that call InitRegistry.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
	enabled.Store(false)
}

// AllocatorMetrics is the metrics surface the block allocator calls
// through. The Prometheus constructor returns a nil AllocatorMetrics when
// metrics are disabled, so callers check for nil before calling a method.
type AllocatorMetrics interface {
	RecordMalloc()
	RecordFree()
	SetFreeBlocks(n int)
}

// FacadeMetrics is the metrics surface pkg/memfs calls through.
type FacadeMetrics interface {
	RecordOperation(op string, duration float64)
	RecordError(op string, code string)
	RecordBytesRead(n int)
	RecordBytesWritten(n int)
	SetOpenFileCount(n int)
	SetDirectoryFileCount(n int)
}
