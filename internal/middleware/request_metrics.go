package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

func RequestMetrics(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			metricsManager.GaugeRequests.Inc()
			defer metricsManager.GaugeRequests.Dec()

			begin := time.Now()
			resp := &responseWriter{ResponseWriter: respWriter, statusCode: http.StatusOK}

			// handler call
			next.ServeHTTP(resp, req)

			status := strconv.Itoa(resp.statusCode)
			metricsManager.CounterRequests.With(
				prometheus.Labels{
					"method": req.Method,
					"status": status,
				},
			).Inc()
			metricsManager.HistogramRequestDuration.With(
				prometheus.Labels{
					"route":       routeName(req),
					"method":      req.Method,
					"status_code": status,
				},
			).Observe(time.Since(begin).Seconds())
		})
	}
}

// routeName keeps label cardinality bounded by using the route template.
func routeName(req *http.Request) string {
	route := mux.CurrentRoute(req)
	if route == nil {
		return "unknown"
	}
	if name := route.GetName(); name != "" {
		return name
	}
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	return "unknown"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (r *responseWriter) WriteHeader(statusCode int) {
	if !r.wroteHeader {
		r.statusCode = statusCode
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseWriter) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
