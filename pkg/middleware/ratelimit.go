package middleware

import (
	"net/http"
	"time"

	"cinema-listing/pkg/utils"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimit limits each client IP to requests per window. requests <= 0
// returns a pass-through middleware.
func RateLimit(requests int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", r.RemoteAddr),
				zap.String("path", r.URL.Path),
			)
			_ = utils.ResponseTooManyRequests(w, "Too many requests, slow down")
		}),
	)
}
