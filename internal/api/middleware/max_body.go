package middleware

import (
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/logging"
	"go.uber.org/zap"
)

// MaxBodyBytes caps the JSON body of writes. Document bytes go straight to
// object storage through presigned URLs and never reach this limit.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || r.Body == nil || !hasBody(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if r.ContentLength > limit {
				logging.FromContext(r.Context()).Warn("request body over limit",
					zap.String("path", r.URL.Path),
					zap.Int64("content_length", r.ContentLength),
					zap.Int64("limit", limit),
				)
				api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			// Chunked bodies are cut off here and surface as 413 from api.Decode.
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
