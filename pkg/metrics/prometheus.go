// Package metrics expõe os coletores Prometheus da API de vendas.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Manager agrupa os coletores registrados em um registry
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dashboardComputations *prometheus.CounterVec

	snapshotRuns           *prometheus.CounterVec
	snapshotLastSuccessSec prometheus.Gauge
}

// Registry próprio, sem os coletores padrão do Go
var customRegistry = prometheus.NewRegistry()

var globalManager = NewManager(WithPrometheusRegistry(customRegistry))

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sales_ops",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de requisições HTTP por rota, método e status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_milliseconds",
			Help:      "Duração das requisições HTTP em milissegundos",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.dashboardComputations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "dashboard",
			Name:      "computations_total",
			Help:      "Total de painéis calculados por tipo e resultado",
		},
		[]string{"panel", "result"},
	)

	m.snapshotRuns = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "ranking_snapshot",
			Name:      "runs_total",
			Help:      "Total de execuções do snapshot de ranking por resultado",
		},
		[]string{"result"},
	)

	m.snapshotLastSuccessSec = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "ranking_snapshot",
		Name:      "last_success_unix",
		Help:      "Horário Unix da última execução bem-sucedida do snapshot",
	})
}

func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, duration time.Duration) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(float64(duration.Milliseconds()))
}

func (m *Manager) RecordDashboardComputation(panel string, err error) {
	m.dashboardComputations.WithLabelValues(panel, result(err)).Inc()
}

func (m *Manager) ObserveSnapshotRun(err error) {
	m.snapshotRuns.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.snapshotLastSuccessSec.SetToCurrentTime()
	}
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// RecordHTTPRequest registra a requisição no manager global
func RecordHTTPRequest(endpoint, method, statusCode string, duration time.Duration) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, duration)
}

func RecordDashboardComputation(panel string, err error) {
	globalManager.RecordDashboardComputation(panel, err)
}

func ObserveSnapshotRun(err error) {
	globalManager.ObserveSnapshotRun(err)
}

// GetRegistry retorna o registry servido em /metrics
func GetRegistry() *prometheus.Registry {
	return globalManager.Registry()
}
