package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogRequest writes one trace line per request. Server errors are logged at
// warn level so they show up without trace logging enabled.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			resp := &responseWriter{w, http.StatusOK}
			next.ServeHTTP(resp, r)

			entry := log.WithFields(log.Fields{
				"method":   r.Method,
				"route":    routeTemplate(r),
				"status":   resp.statusCode,
				"ua":       r.Header.Get("User-Agent"),
				"duration": time.Since(start).String(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Trace("request served")
		})
	}
}
