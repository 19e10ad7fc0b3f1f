package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SANITY_DATASET", "SANITY_API_VERSION", "ANTHROPIC_MODEL",
		"OPENAI_IMAGE_MODEL", "WORKER_COUNT", "MAX_QUEUE_SIZE",
		"MAX_TITLES_PER_BATCH", "PUBLISH_DELAY", "EXCERPT_LENGTH", "JOB_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8070" {
		t.Errorf("expected default port 8070, got %q", cfg.Port)
	}
	if cfg.SanityDataset != "production" {
		t.Errorf("expected default dataset production, got %q", cfg.SanityDataset)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 50 {
		t.Errorf("expected queue size 50, got %d", cfg.MaxQueueSize)
	}
	if cfg.MaxTitlesPerBatch != 25 {
		t.Errorf("expected 25 titles per batch, got %d", cfg.MaxTitlesPerBatch)
	}
	if cfg.PublishDelay != 10*time.Second {
		t.Errorf("expected 10s publish delay, got %v", cfg.PublishDelay)
	}
	if cfg.ExcerptLength != 160 {
		t.Errorf("expected excerpt length 160, got %d", cfg.ExcerptLength)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORKER_COUNT", "5")
	t.Setenv("PUBLISH_DELAY", "250ms")
	t.Setenv("JOB_TTL", "30m")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("expected 5 workers, got %d", cfg.WorkerCount)
	}
	if cfg.PublishDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %v", cfg.PublishDelay)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "lots")
	t.Setenv("PUBLISH_DELAY", "soon")
	t.Setenv("MAX_QUEUE_SIZE", "-3")

	cfg := Load()

	if cfg.WorkerCount != 2 {
		t.Errorf("expected fallback worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.PublishDelay != 10*time.Second {
		t.Errorf("expected fallback delay 10s, got %v", cfg.PublishDelay)
	}
	if cfg.MaxQueueSize != 50 {
		t.Errorf("expected fallback queue size 50, got %d", cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		SanityProjectID: "abc123",
		SanityToken:     "sk-token",
		BlogforgeAPIKey: "key",
		AnthropicAPIKey: "sk-ant",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	tests := []struct {
		name  string
		unset func(*Config)
	}{
		{"missing project id", func(c *Config) { c.SanityProjectID = "" }},
		{"missing token", func(c *Config) { c.SanityToken = "" }},
		{"missing api key", func(c *Config) { c.BlogforgeAPIKey = "" }},
		{"missing anthropic key", func(c *Config) { c.AnthropicAPIKey = "" }},
	}
	for _, tt := range tests {
		cfg := valid
		tt.unset(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestImagesEnabled(t *testing.T) {
	if (Config{}).ImagesEnabled() {
		t.Error("expected images disabled without key")
	}
	if !(Config{OpenAIAPIKey: "sk"}).ImagesEnabled() {
		t.Error("expected images enabled with key")
	}
}
