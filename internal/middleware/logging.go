package middleware

import (
	"net/http"
	"time"

	logpkg "github.com/arizal132/todo-app/internal/logger"
	"github.com/arizal132/todo-app/internal/request"
	"go.uber.org/zap"
)

// statusRecorder captures the status code a downstream handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Logging emits one structured entry per request: method, sanitized path,
// client IP, status and latency.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			logger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.String("ip", logpkg.SanitizeString(request.ClientIP(r), logpkg.MaxGeneralStringLength)),
				zap.Int("status_code", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
