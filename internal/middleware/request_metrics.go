package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/2beens/fitlog/internal/telemetry/metrics"
)

func RequestMetrics(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			metricsManager.GaugeRequests.Inc()
			defer metricsManager.GaugeRequests.Dec()

			begin := time.Now()
			resp := &responseWriter{respWriter, http.StatusOK}

			// handler call
			next.ServeHTTP(resp, req)

			status := strconv.Itoa(resp.statusCode)
			metricsManager.HistogramRequestDuration.With(prometheus.Labels{
				"route":       routeTemplate(req),
				"method":      req.Method,
				"status_code": status,
			}).Observe(time.Since(begin).Seconds())
			metricsManager.CounterRequests.With(prometheus.Labels{
				"method": req.Method,
				"status": status,
			}).Inc()
		})
	}
}

// routeTemplate keeps label cardinality low by using /workouts/{id} instead of the raw path.
func routeTemplate(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}
