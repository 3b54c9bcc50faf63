package prometheus

import (
	"github.com/blockpool/memfs/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// facadeMetrics is the Prometheus implementation of metrics.FacadeMetrics.
type facadeMetrics struct {
	operationDuration  *prometheus.HistogramVec
	operationErrors    *prometheus.CounterVec
	bytesRead          prometheus.Counter
	bytesWritten       prometheus.Counter
	openFileCount      prometheus.Gauge
	directoryFileCount prometheus.Gauge
}

// NewFacadeMetrics creates a Prometheus-backed FacadeMetrics.
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewFacadeMetrics() metrics.FacadeMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &facadeMetrics{
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "memfs_operation_duration_milliseconds",
				Help: "Duration of filesystem operations in milliseconds.",
				Buckets: []float64{
					0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100,
				},
			},
			[]string{"operation"},
		),
		operationErrors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "memfs_operation_errors_total",
				Help: "Total number of operation failures by taxonomy code.",
			},
			[]string{"operation", "code"},
		),
		bytesRead: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "memfs_bytes_read_total",
			Help: "Total bytes read from file payloads.",
		}),
		bytesWritten: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "memfs_bytes_written_total",
			Help: "Total bytes written to file payloads.",
		}),
		openFileCount: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "memfs_open_file_count",
			Help: "Current number of open file entries.",
		}),
		directoryFileCount: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "memfs_directory_file_count",
			Help: "Current number of files in the directory.",
		}),
	}
}

func (m *facadeMetrics) RecordOperation(op string, duration float64) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(op).Observe(duration)
}

func (m *facadeMetrics) RecordError(op string, code string) {
	if m == nil {
		return
	}
	m.operationErrors.WithLabelValues(op, code).Inc()
}

func (m *facadeMetrics) RecordBytesRead(n int) {
	if m == nil {
		return
	}
	m.bytesRead.Add(float64(n))
}

func (m *facadeMetrics) RecordBytesWritten(n int) {
	if m == nil {
		return
	}
	m.bytesWritten.Add(float64(n))
}

func (m *facadeMetrics) SetOpenFileCount(n int) {
	if m == nil {
		return
	}
	m.openFileCount.Set(float64(n))
}

func (m *facadeMetrics) SetDirectoryFileCount(n int) {
	if m == nil {
		return
	}
	m.directoryFileCount.Set(float64(n))
}
