package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smarterworkco/GPT-UI/internal/api/handlers"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/config"
	"github.com/smarterworkco/GPT-UI/internal/database"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/gemini"
	"github.com/smarterworkco/GPT-UI/internal/logging"
	"github.com/smarterworkco/GPT-UI/internal/openai"
	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/smarterworkco/GPT-UI/internal/server"
	"github.com/smarterworkco/GPT-UI/internal/service"
	"github.com/smarterworkco/GPT-UI/internal/storage"
	"github.com/smarterworkco/GPT-UI/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the bizhub API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides BIZHUB_PORT)")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cmd.Flags().Bool("no-seed", false, "Skip installing the demo account")

	return cmd
}

// app bundles what bootstrap opened so callers can release it
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
	repo   repository.Repository
}

func (rt *app) Close() {
	if rt.pool != nil {
		rt.pool.Close()
	}
	_ = rt.logger.Sync()
}

// bootstrap loads config, builds the logger and selects the repository
// backend: Postgres when a database URL is configured, memory otherwise.
func bootstrap(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	rt := &app{cfg: cfg, logger: logger}

	if !cfg.HasDatabase() {
		logger.Info("no database configured, using in-memory repository")
		rt.repo = repository.NewMemoryRepository()
		return rt, nil
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL, database.PoolOptions{})
	if err != nil {
		return nil, err
	}
	rt.pool = pool
	logger.Info("connected to database")

	if migrate {
		if _, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	rt.repo = repository.NewPostgresRepository(pool)
	return rt, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	rt, err := bootstrap(ctx, !noMigrate)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, logger := rt.cfg, rt.logger

	shutdownTelemetry, err := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate(),
		Debug:            cfg.Debug,
		Logger:           logger,
	})
	if err != nil {
		logger.Warn("telemetry init failed, continuing without tracing", zap.Error(err))
	} else {
		defer shutdownTelemetry()
	}

	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		cfg.Port = portFlag
	}

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(rt.repo, tokens)

	noSeed, _ := cmd.Flags().GetBool("no-seed")
	if cfg.SeedDemo && !noSeed {
		biz, err := repository.Seed(ctx, rt.repo, authSvc.HashPassword)
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		logger.Info("demo account ready", zap.String("username", repository.DemoUsername), zap.Int64("business_id", biz.ID))
	}

	completer, closeCompleter, err := newCompleter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCompleter()

	var fileStore service.FileStorage
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    cfg.S3Endpoint != "",
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		logger.Info("document storage ready", zap.String("bucket", cfg.S3Bucket))
		fileStore = s3Client
	} else {
		logger.Info("S3 not configured, document file uploads disabled")
	}

	chatSvc := service.NewChatService(rt.repo, completer, logger)
	fileSvc := service.NewDocumentFileService(rt.repo, fileStore, logger)

	var pinger handlers.Pinger
	if rt.pool != nil {
		pinger = rt.pool
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:           logger,
		TokenValidator:   authSvc,
		BusinessResolver: rt.repo,
		AIRateLimiter:    middleware.NewRateLimiter(cfg.AIRatePerMinute, cfg.AIRateBurst),
		HealthHandler:    handlers.NewHealthHandler(pinger),
		AuthHandler:      handlers.NewAuthHandler(authSvc),
		AccountHandler:   handlers.NewAccountHandler(rt.repo, rt.repo),
		DocumentHandler:  handlers.NewDocumentHandler(rt.repo, fileSvc),
		FeedbackHandler:  handlers.NewFeedbackHandler(rt.repo),
		ChatHandler:      handlers.NewChatHandler(rt.repo, chatSvc),
		AnalyticsHandler: handlers.NewAnalyticsHandler(rt.repo),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCompleter picks the configured AI provider. Without credentials chat
// endpoints answer 503.
func newCompleter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Completer, func(), error) {
	noop := func() {}

	if !cfg.HasCompletion() {
		logger.Warn("AI provider has no credentials, chat completions disabled", zap.String("provider", cfg.AIProvider))
		return NoOpCompleter{}, noop, nil
	}

	switch cfg.AIProvider {
	case config.AIProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		logger.Info("AI provider ready", zap.String("provider", client.Provider()), zap.String("model", cfg.GeminiModel))
		return client, func() { _ = client.Close() }, nil
	default:
		client := openai.NewClientWithConfig(openai.Config{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel})
		logger.Info("AI provider ready", zap.String("provider", client.Provider()), zap.String("model", cfg.OpenAIModel))
		return client, noop, nil
	}
}

// NoOpCompleter stands in when no AI provider is configured
type NoOpCompleter struct{}

func (NoOpCompleter) Complete(ctx context.Context, system string, history []domain.Turn) (string, error) {
	return "", domain.ErrCompletionUnavailable
}

func (NoOpCompleter) Provider() string { return "none" }
