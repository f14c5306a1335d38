package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/sales-ops-api/pkg/metrics"
)

const unmatchedEndpoint = "unmatched"

// PrometheusMiddleware registra contagem e latência pelo padrão da rota casada
func PrometheusMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			lrw := newLoggingResponseWriter(w)
			r, pattern := withRoutePattern(r)

			next.ServeHTTP(lrw, r)

			endpoint := pattern.value
			if endpoint == "" {
				// 404, 405 e preflight não casam rota
				endpoint = unmatchedEndpoint
			}

			metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(lrw.statusCode), time.Since(start))
		})
	}
}
