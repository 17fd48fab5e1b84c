package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "BIZHUB"

const (
	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Empty selects the in-memory repository
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"file://migrations"`
	SeedDemo       bool   `envconfig:"SEED_DEMO" default:"true"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	AIProvider      string  `envconfig:"AI_PROVIDER" default:"openai"`
	OpenAIAPIKey    string  `envconfig:"OPENAI_API_KEY"`
	OpenAIModel     string  `envconfig:"OPENAI_MODEL" default:"gpt-4"`
	GeminiAPIKey    string  `envconfig:"GEMINI_API_KEY"`
	GeminiModel     string  `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	AIRatePerMinute float64 `envconfig:"AI_RATE_PER_MINUTE" default:"20"`
	AIRateBurst     int     `envconfig:"AI_RATE_BURST" default:"5"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"bizhub-documents"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	SentryDSN string `envconfig:"SENTRY_DSN"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.AIProvider {
	case AIProviderOpenAI, AIProviderGemini:
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q (expected %s or %s)", cfg.AIProvider, AIProviderOpenAI, AIProviderGemini)
	}

	return &cfg, nil
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func (c *Config) HasS3() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3Bucket != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// HasCompletion reports whether the selected AI provider has credentials
func (c *Config) HasCompletion() bool {
	if c.AIProvider == AIProviderGemini {
		return c.HasGemini()
	}
	return c.HasOpenAI()
}

// TracesSampleRate samples every transaction in development and 10% elsewhere
func (c *Config) TracesSampleRate() float64 {
	if c.Environment == "development" {
		return 1.0
	}
	return 0.1
}
