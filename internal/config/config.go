package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Content store connection
	SanityProjectID  string
	SanityDataset    string
	SanityToken      string
	SanityAPIVersion string

	// Auth
	BlogforgeAPIKey string

	// Article generation
	AnthropicAPIKey string
	AnthropicModel  string

	// Hero images (empty API key disables image generation)
	OpenAIAPIKey     string
	OpenAIImageModel string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Batch limits and pacing
	MaxTitlesPerBatch int
	PublishDelay      time.Duration

	// Post defaults
	DefaultCategoryID string
	ExcerptLength     int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8070"),

		SanityProjectID:  os.Getenv("SANITY_PROJECT_ID"),
		SanityDataset:    envOr("SANITY_DATASET", "production"),
		SanityToken:      os.Getenv("SANITY_TOKEN"),
		SanityAPIVersion: envOr("SANITY_API_VERSION", "v2021-06-07"),

		BlogforgeAPIKey: os.Getenv("BLOGFORGE_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIImageModel: envOr("OPENAI_IMAGE_MODEL", "dall-e-3"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxTitlesPerBatch: envInt("MAX_TITLES_PER_BATCH", 25),
		PublishDelay:      envDuration("PUBLISH_DELAY", 10*time.Second),

		DefaultCategoryID: os.Getenv("DEFAULT_CATEGORY_ID"),
		ExcerptLength:     envInt("EXCERPT_LENGTH", 160),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxTitlesPerBatch <= 0 {
		cfg.MaxTitlesPerBatch = 25
	}
	if cfg.PublishDelay < 0 {
		cfg.PublishDelay = 10 * time.Second
	}
	if cfg.ExcerptLength <= 0 {
		cfg.ExcerptLength = 160
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.SanityProjectID == "" {
		return fmt.Errorf("SANITY_PROJECT_ID is required")
	}
	if c.SanityToken == "" {
		return fmt.Errorf("SANITY_TOKEN is required")
	}
	if c.BlogforgeAPIKey == "" {
		return fmt.Errorf("BLOGFORGE_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}

// ImagesEnabled reports whether hero-image generation is configured.
func (c Config) ImagesEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
