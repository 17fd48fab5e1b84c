package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/logging"
	"github.com/smarterworkco/GPT-UI/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter holds one token bucket per caller. Buckets of idle callers
// expire from the cache.
type RateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter allows perMinute requests per caller with the given burst
func NewRateLimiter(perMinute float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: cache.New(30*time.Minute, 10*time.Minute),
		rate:     rate.Limit(perMinute / 60),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if x, found := rl.limiters.Get(key); found {
		limiter := x.(*rate.Limiter)
		rl.limiters.Set(key, limiter, cache.DefaultExpiration)
		return limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters.Set(key, limiter, cache.DefaultExpiration)
	return limiter
}

// Allow reports whether key may make another request now
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Handler rejects callers over their budget with 429
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if userID := GetUserID(r.Context()); userID != 0 {
			key = "user:" + strconv.FormatInt(userID, 10)
		}

		if !rl.Allow(key) {
			telemetry.RecordRateLimited()
			logging.FromContext(r.Context()).Info("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", r.URL.Path),
			)
			api.HandleError(w, r, domain.ErrRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}
