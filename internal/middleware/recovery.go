package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/apierr"
	"github.com/2beens/fitlog/internal/auth/authctx"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a 500 INTERNAL_ERROR envelope.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				fields := log.Fields{
					"method": req.Method,
					"route":  routeTemplate(req),
				}
				if userID, ok := authctx.UserIDFromContext(req.Context()); ok {
					fields["user_id"] = userID
				}
				log.WithFields(fields).Errorf("panic serving request: %v\n%s", recovered, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				apierr.Write(w, apierr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(w, req)
		})
	}
}
