package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	// Logging
	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text

	// Text generation
	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"gemini"` // gemini, openai
	LLMModel     string `env:"LLM_MODEL"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Planner limits
	PlannerMaxIterations     int     `env:"PLANNER_MAX_ITERATIONS" envDefault:"3"`
	PlannerSafetyLoopPadding int     `env:"PLANNER_SAFETY_LOOP_PADDING" envDefault:"3"`
	PlannerBudgetTolerance   float64 `env:"PLANNER_BUDGET_TOLERANCE" envDefault:"5000"`

	// Images
	PexelsAPIKey  string        `env:"PEXELS_API_KEY"`
	PexelsBaseURL string        `env:"PEXELS_BASE_URL" envDefault:"https://api.pexels.com/v1"`
	PexelsTimeout time.Duration `env:"PEXELS_TIMEOUT" envDefault:"15s"`

	// Storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"` // memory, postgres
	PostgresURL   string `env:"POSTGRES_URL"`

	// Redis image cache, disabled when REDIS_ADDR is empty
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisImageTTL time.Duration `env:"REDIS_IMAGE_TTL" envDefault:"168h"`

	// Rate limiting on generation endpoints
	RateLimitEnabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"0.5"`
	RateLimitBurst   int     `env:"RATE_LIMIT_BURST" envDefault:"3"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}
	return Parse()
}

// Parse reads configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider() {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q, use 'gemini' or 'openai'", c.LLMProvider)
	}

	switch c.Storage() {
	case "memory":
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q, use 'memory' or 'postgres'", c.StorageDriver)
	}

	if c.PlannerMaxIterations < 0 {
		return fmt.Errorf("PLANNER_MAX_ITERATIONS cannot be negative")
	}
	if c.PlannerSafetyLoopPadding < 0 {
		return fmt.Errorf("PLANNER_SAFETY_LOOP_PADDING cannot be negative")
	}
	if c.PlannerBudgetTolerance < 0 {
		return fmt.Errorf("PLANNER_BUDGET_TOLERANCE cannot be negative")
	}

	if c.LLMAPIKey() == "" {
		log.Printf("WARN: no API key set for LLM provider %s, generation requests will fail", c.Provider())
	}
	if c.PexelsAPIKey == "" {
		log.Printf("WARN: PEXELS_API_KEY is not set, image lookups will return nothing")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func (c *Config) Provider() string {
	return strings.ToLower(strings.TrimSpace(c.LLMProvider))
}

func (c *Config) Storage() string {
	return strings.ToLower(strings.TrimSpace(c.StorageDriver))
}

// LLMAPIKey returns the key belonging to the selected provider.
func (c *Config) LLMAPIKey() string {
	if c.Provider() == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
