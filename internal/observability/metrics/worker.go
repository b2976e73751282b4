package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry
	service  string

	importTotal    *prometheus.CounterVec
	importDuration *prometheus.HistogramVec
	importInFlight prometheus.Gauge
	importedRows   prometheus.Counter
	queueLag       prometheus.Histogram
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()
	serviceLabel := prometheus.Labels{"service": service}

	importTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "import_total",
			Help:      "Processed spreadsheet imports by outcome.",
		},
		[]string{"service", "status"},
	)
	importDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "import_duration_seconds",
			Help:      "Spreadsheet import duration in seconds by outcome.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service", "status"},
	)
	importInFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "worker",
		Name:        "import_in_flight",
		Help:        "Spreadsheet imports currently being applied.",
		ConstLabels: serviceLabel,
	})
	importedRows := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   "worker",
		Name:        "imported_rows_total",
		Help:        "Employee rows upserted by completed imports.",
		ConstLabels: serviceLabel,
	})
	queueLag := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   "worker",
		Name:        "queue_lag_seconds",
		Help:        "Delay between upload and processing start.",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		ConstLabels: serviceLabel,
	})

	registry.MustRegister(importTotal, importDuration, importInFlight, importedRows, queueLag)

	return &WorkerMetrics{
		registry:       registry,
		service:        service,
		importTotal:    importTotal,
		importDuration: importDuration,
		importInFlight: importInFlight,
		importedRows:   importedRows,
		queueLag:       queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartImport() {
	m.importInFlight.Inc()
}

func (m *WorkerMetrics) FinishImport(duration time.Duration, rows int, err error) {
	m.importInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.importTotal.WithLabelValues(m.service, status).Inc()
	m.importDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
	if rows > 0 {
		m.importedRows.Add(float64(rows))
	}
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.Observe(lag.Seconds())
}
