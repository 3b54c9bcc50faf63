// Package prometheus provides the Prometheus-backed implementations of the
// interfaces declared in pkg/metrics, grounded on the teacher's own
// pkg/metrics/prometheus collectors (cache.go, badger.go): promauto
// registration against the package-level registry. The constructors return
// a nil interface when metrics are disabled, and call sites check for nil;
// every method also tolerates a nil receiver.
package prometheus

import (
	"github.com/blockpool/memfs/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// allocatorMetrics is the Prometheus implementation of metrics.AllocatorMetrics.
type allocatorMetrics struct {
	mallocTotal prometheus.Counter
	freeTotal   prometheus.Counter
	freeBlocks  prometheus.Gauge
}

// NewAllocatorMetrics creates a Prometheus-backed AllocatorMetrics.
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewAllocatorMetrics() metrics.AllocatorMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &allocatorMetrics{
		mallocTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "memfs_allocator_malloc_total",
			Help: "Total number of blocks allocated from the arena.",
		}),
		freeTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "memfs_allocator_free_total",
			Help: "Total number of blocks released back to the arena.",
		}),
		freeBlocks: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "memfs_allocator_free_blocks",
			Help: "Current number of unallocated blocks in the arena.",
		}),
	}
}

func (m *allocatorMetrics) RecordMalloc() {
	if m == nil {
		return
	}
	m.mallocTotal.Inc()
}

func (m *allocatorMetrics) RecordFree() {
	if m == nil {
		return
	}
	m.freeTotal.Inc()
}

func (m *allocatorMetrics) SetFreeBlocks(n int) {
	if m == nil {
		return
	}
	m.freeBlocks.Set(float64(n))
}
