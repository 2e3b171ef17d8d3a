package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr string `yaml:"addr"`

	// Completion collaborator. BaseURL may point at any OpenAI-compatible
	// provider.
	CompletionBaseURL string `yaml:"completion_base_url"`
	CompletionAPIKey  string `yaml:"completion_api_key"`
	CompletionModel   string `yaml:"completion_model"`

	// UseMockCompletion swaps the external collaborator for the canned
	// local client (useful for dev).
	UseMockCompletion bool `yaml:"use_mock_completion"`

	// SeedDemoData loads the in-memory demo dataset on startup.
	SeedDemoData bool `yaml:"seed_demo_data"`

	LogLevel string `yaml:"log_level"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

// Load builds the config from an optional YAML file (CHATCORE_CONFIG) with
// env vars taking precedence. A .env file in the working directory is read
// first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            ":8080",
		CompletionModel: "openai/gpt-3.5-turbo",
		LogLevel:        "info",
	}

	if path := os.Getenv("CHATCORE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", path)
		}
	}

	cfg.Addr = getEnv("CHATCORE_ADDR", cfg.Addr)
	cfg.CompletionBaseURL = getEnv("CHATCORE_COMPLETION_BASE_URL", cfg.CompletionBaseURL)
	cfg.CompletionAPIKey = getEnv("CHATCORE_COMPLETION_API_KEY", cfg.CompletionAPIKey)
	cfg.CompletionModel = getEnv("CHATCORE_COMPLETION_MODEL", cfg.CompletionModel)
	cfg.UseMockCompletion = getBoolEnv("CHATCORE_USE_MOCK_COMPLETION", cfg.UseMockCompletion)
	cfg.SeedDemoData = getBoolEnv("CHATCORE_SEED_DEMO_DATA", cfg.SeedDemoData)
	cfg.LogLevel = getEnv("CHATCORE_LOG_LEVEL", cfg.LogLevel)

	if !cfg.UseMockCompletion && cfg.CompletionAPIKey == "" {
		// No key means no usable collaborator; fall back to the mock
		// rather than failing every turn.
		cfg.UseMockCompletion = true
	}

	return cfg, nil
}
