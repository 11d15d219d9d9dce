package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limits requests per client IP, in the scope of routerName.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP, err := pkg.ReadUserIP(r)
			if err != nil {
				log.Debugf("rate limit: cannot read client ip: %s", err)
				clientIP = "unknown"
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				routerName+"||"+clientIP,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limit [%s]: %s", routerName, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}

			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			pkg.WriteResponse(
				w,
				pkg.ContentType.Text,
				fmt.Sprintf("retry after %d seconds", retryAfter),
				http.StatusTooManyRequests,
			)
		})
	}
}
