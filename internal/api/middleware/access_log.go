package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/logging"
	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// AccessLog stores a request-scoped logger in the context and emits one
// structured entry per request once the handler returns.
func AccessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}

			reqLogger := logger
			if requestID := GetRequestID(r.Context()); requestID != "" {
				reqLogger = logger.With(zap.String("request_id", requestID))
			}
			ctx, userID := userIDSink(logging.WithContext(r.Context(), reqLogger))
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", rec.bytes),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("remote_addr", clientIP(r)),
				zap.String("user_agent", r.UserAgent()),
			}
			if *userID != 0 {
				fields = append(fields, zap.Int64("user_id", *userID))
			}

			switch {
			case status >= 500:
				reqLogger.Error("http request", fields...)
			case status >= 400:
				reqLogger.Warn("http request", fields...)
			default:
				reqLogger.Info("http request", fields...)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
