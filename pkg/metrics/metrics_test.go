package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherValues(t *testing.T, registry *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[family.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[family.GetName()] += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				values[family.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestManager_RecordHTTPRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	manager := NewManager(WithPrometheusRegistry(registry), WithNamespace("test"))

	manager.RecordHTTPRequest("/v1/dashboard/metrics", "GET", "200", 12*time.Millisecond)
	manager.RecordHTTPRequest("/v1/dashboard/metrics", "GET", "400", 3*time.Millisecond)

	values := gatherValues(t, registry)
	assert.Equal(t, 2.0, values["test_http_requests_total"])
	assert.Equal(t, 2.0, values["test_http_request_duration_milliseconds"])
}

func TestManager_ObserveSnapshotRun(t *testing.T) {
	registry := prometheus.NewRegistry()
	manager := NewManager(WithPrometheusRegistry(registry))

	manager.ObserveSnapshotRun(nil)
	manager.ObserveSnapshotRun(errors.New("falha"))
	manager.RecordDashboardComputation("ranking", nil)

	values := gatherValues(t, registry)
	assert.Equal(t, 2.0, values["sales_ops_ranking_snapshot_runs_total"])
	assert.Greater(t, values["sales_ops_ranking_snapshot_last_success_unix"], 0.0)
	assert.Equal(t, 1.0, values["sales_ops_dashboard_computations_total"])
}

func TestGetRegistry(t *testing.T) {
	assert.Same(t, customRegistry, GetRegistry())
}
