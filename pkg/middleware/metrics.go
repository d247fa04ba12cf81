package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/traffic-dashboard-api/pkg/metrics"
)

// MetricsMiddleware registra contagem e duração das requisições no Prometheus
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(lrw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method).Observe(time.Since(startTime).Seconds())
		})
	}
}
