package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per client IP on the wrapped router.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("rl::%s::%s", routerName, clientIP(r))
			res, err := rateLimiter.Allow(
				r.Context(),
				key,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limiter [%s]: %s", routerName, err)
				pkg.WriteJSONError(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", res.RetryAfter.Seconds()))
			pkg.WriteJSONError(
				w,
				fmt.Sprintf("retry after %.1f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
