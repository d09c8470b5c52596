package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/MrEthical07/passy"
	"github.com/MrEthical07/passy/internal/rate"
	"github.com/sirupsen/logrus"
)

// Allower is satisfied by *rate.Limiter.
type Allower interface {
	Allow(ctx context.Context, key string) error
}

// Budgeter is implemented by limiters that can report the window budget.
// *rate.Limiter satisfies it; RateLimit then sets X-RateLimit-Limit and
// X-RateLimit-Remaining on every response it lets through or rejects.
type Budgeter interface {
	Limit() int
	Remaining(ctx context.Context, key string) (int, error)
}

const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
)

// KeyFunc picks the rate-limit key for a request.
type KeyFunc func(r *http.Request) string

// ClientKey uses the token subject when RequireBridgeToken ran first and the
// remote host otherwise.
func ClientKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok && claims.Subject != "" {
		return "sub:" + claims.Subject
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// RateLimit answers 429 once a client exceeds its window budget. When Redis
// is unreachable the request is let through and a warning is logged.
func RateLimit(limiter Allower, keyFn KeyFunc, metrics *passy.Metrics, logger logrus.FieldLogger) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = ClientKey
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		budget, _ := limiter.(Budgeter)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			err := limiter.Allow(r.Context(), key)
			if budget != nil && (err == nil || errors.Is(err, rate.ErrRateLimited)) {
				setBudgetHeaders(w, r, budget, key)
			}
			switch {
			case err == nil:
			case errors.Is(err, rate.ErrRateLimited):
				metrics.Inc(passy.MetricRateLimited)
				writeError(w, http.StatusTooManyRequests, "rate limited")
				return
			default:
				logger.WithError(err).WithField("request_id", passy.RequestIDFromContext(r.Context())).
					Warn("rate limiter unavailable, allowing request")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setBudgetHeaders(w http.ResponseWriter, r *http.Request, budget Budgeter, key string) {
	limit := budget.Limit()
	if limit <= 0 {
		return
	}
	remaining, err := budget.Remaining(r.Context(), key)
	if err != nil {
		return
	}
	w.Header().Set(HeaderRateLimit, strconv.Itoa(limit))
	w.Header().Set(HeaderRateRemaining, strconv.Itoa(remaining))
}
