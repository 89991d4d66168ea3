package middleware

import (
	"net/http"
	"time"

	"github.com/jidn/resteasy"
	"github.com/rs/zerolog"
)

// Logger emits one structured log line per request, carrying the request id
// when RequestID runs outside of it.
func Logger(logger zerolog.Logger) resteasy.Decorator {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			event := logger.Info()
			if rec.status >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("elapsed", time.Since(started)).
				Str("requestid", RequestIDFromContext(r.Context())).
				Msg("request served")
		})
	}
}
