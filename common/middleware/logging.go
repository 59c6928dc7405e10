package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/TomaszChromy/CarRentalManager/common/logger"
)

// Logger adds a request-scoped logger to the context and logs request
// start and completion with timing.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := GetRequestID(r.Context())

		reqLogger := logger.RequestLogger(
			r.Context(),
			r.Method,
			r.URL.Path,
			r.RemoteAddr,
			r.UserAgent(),
			requestID,
		)

		ctx := context.WithValue(r.Context(), RequestLoggerKey, reqLogger)
		r = r.WithContext(ctx)

		wrw := &wrappedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		reqLogger.Info("incoming request",
			"query", r.URL.RawQuery,
		)

		next.ServeHTTP(wrw, r)

		duration := time.Since(start)
		reqLogger.Info("request completed",
			"status_code", wrw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"bytes_written", wrw.bytesWritten,
		)
	})
}

// GetRequestLogger retrieves the request-scoped logger from context
func GetRequestLogger(ctx context.Context) *slog.Logger {
	if reqLogger, ok := ctx.Value(RequestLoggerKey).(*slog.Logger); ok {
		return reqLogger
	}
	return logger.WithContext(ctx)
}
