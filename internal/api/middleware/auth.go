package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	BusinessKey   contextKey = "business"
	userIDSinkKey contextKey = "user_id_sink"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// BusinessResolver finds the business owned by a user
type BusinessResolver interface {
	GetBusiness(ctx context.Context, userID int64) (*domain.Business, error)
}

// BearerAuth requires a valid bearer token and stores the caller's user id
// in the request context.
func BearerAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				api.Error(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				if domain.CodeOf(err) == domain.ErrCodeUnauthorized {
					api.Error(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				api.HandleError(w, r, err)
				return
			}

			if sink, ok := r.Context().Value(userIDSinkKey).(*int64); ok {
				*sink = userID
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentBusiness loads the caller's business into the request context.
// Callers without a business get 404.
func CurrentBusiness(resolver BusinessResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			business, err := resolver.GetBusiness(r.Context(), GetUserID(r.Context()))
			if err != nil {
				api.HandleError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), BusinessKey, business)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(UserIDKey).(int64)
	return userID
}

func GetBusiness(ctx context.Context) *domain.Business {
	business, _ := ctx.Value(BusinessKey).(*domain.Business)
	return business
}

// WithUserID returns ctx carrying userID. Used by tests and internal callers.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithBusiness returns ctx carrying business
func WithBusiness(ctx context.Context, business *domain.Business) context.Context {
	return context.WithValue(ctx, BusinessKey, business)
}

// userIDSink returns ctx carrying a slot the auth middleware fills with the
// authenticated user id, reusing a slot installed further out.
func userIDSink(ctx context.Context) (context.Context, *int64) {
	if sink, ok := ctx.Value(userIDSinkKey).(*int64); ok {
		return ctx, sink
	}
	sink := new(int64)
	return context.WithValue(ctx, userIDSinkKey, sink), sink
}
