package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smarterworkco/GPT-UI/internal/api/handlers"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/telemetry"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger           *zap.Logger
	TokenValidator   middleware.TokenValidator
	BusinessResolver middleware.BusinessResolver
	AIRateLimiter    *middleware.RateLimiter

	HealthHandler    *handlers.HealthHandler
	AuthHandler      *handlers.AuthHandler
	AccountHandler   *handlers.AccountHandler
	DocumentHandler  *handlers.DocumentHandler
	FeedbackHandler  *handlers.FeedbackHandler
	ChatHandler      *handlers.ChatHandler
	AnalyticsHandler *handlers.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.SentryMiddleware)
	r.Use(telemetry.InstrumentHandler)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", cfg.HealthHandler.Check)
	r.Handle("/metrics", telemetry.MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(cfg.TokenValidator))

			r.Get("/user", cfg.AccountHandler.GetUser)
			r.Get("/agents", handlers.ListAgents)

			r.Group(func(r chi.Router) {
				r.Use(middleware.CurrentBusiness(cfg.BusinessResolver))

				r.Get("/business", cfg.AccountHandler.GetBusiness)
				r.Put("/business", cfg.AccountHandler.UpdateBusiness)

				r.Route("/documents", func(r chi.Router) {
					r.Get("/", cfg.DocumentHandler.List)
					r.Post("/", cfg.DocumentHandler.Create)
					r.Get("/{id}", cfg.DocumentHandler.Get)
					r.Put("/{id}", cfg.DocumentHandler.Update)
					r.Delete("/{id}", cfg.DocumentHandler.Delete)
					r.Post("/{id}/file", cfg.DocumentHandler.InitUpload)
					r.Get("/{id}/file", cfg.DocumentHandler.Download)
				})

				r.Get("/feedback", cfg.FeedbackHandler.List)
				r.Post("/feedback", cfg.FeedbackHandler.Create)

				r.Route("/chat", func(r chi.Router) {
					r.Get("/sessions", cfg.ChatHandler.ListSessions)
					r.Post("/sessions", cfg.ChatHandler.CreateSession)
					r.Get("/sessions/{id}/messages", cfg.ChatHandler.ListMessages)
					r.Post("/sessions/{id}/messages", cfg.ChatHandler.CreateMessage)

					r.Group(func(r chi.Router) {
						if cfg.AIRateLimiter != nil {
							r.Use(cfg.AIRateLimiter.Handler)
						}
						r.Post("/sessions/{id}/ask", cfg.ChatHandler.Ask)
						r.Post("/", cfg.ChatHandler.Prompt)
					})
				})

				r.Get("/analytics/metrics", cfg.AnalyticsHandler.Metrics)
			})
		})
	})

	return r
}
