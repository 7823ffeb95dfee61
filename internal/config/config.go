// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	custom_errors "hackathon-importer/internal/errors"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	SinkSupabase = "supabase"
	SinkPostgres = "postgres"
)

// Config holds all configuration for the importer.
type Config struct {
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	GithubToken       string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL      string        `mapstructure:"GITHUB_API_URL"`
	LLMProvider       string        `mapstructure:"LLM_PROVIDER"`
	LLMModel          string        `mapstructure:"LLM_MODEL"`
	GroqAPIKey        string        `mapstructure:"GROQ_API_KEY"`
	GroqBaseURL       string        `mapstructure:"GROQ_BASE_URL"`
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	Sink              string        `mapstructure:"SINK"`
	SupabaseURL       string        `mapstructure:"SUPABASE_URL"`
	SupabaseKey       string        `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseTable     string        `mapstructure:"SUPABASE_TABLE"`
	DBURL             string        `mapstructure:"DB_URL"`
	Dedupe            bool          `mapstructure:"DEDUPE"`
	RepoDelay         time.Duration `mapstructure:"REPO_DELAY"`
	RepoRateLimit     float64       `mapstructure:"REPO_RATE_LIMIT"`
	HTTPTimeout       time.Duration `mapstructure:"HTTP_TIMEOUT"`
	HackathonKeywords []string      `mapstructure:"HACKATHON_KEYWORDS"`
	KeywordsFile      string        `mapstructure:"KEYWORDS_FILE"`
}

var keys = []string{
	"LOG_LEVEL", "GITHUB_TOKEN", "GITHUB_API_URL", "LLM_PROVIDER", "LLM_MODEL",
	"GROQ_API_KEY", "GROQ_BASE_URL", "GEMINI_API_KEY", "SINK", "SUPABASE_URL",
	"SUPABASE_ANON_KEY", "SUPABASE_TABLE", "DB_URL", "DEDUPE", "REPO_DELAY",
	"REPO_RATE_LIMIT", "HTTP_TIMEOUT", "HACKATHON_KEYWORDS", "KEYWORDS_FILE",
}

// LoadConfig reads configuration from a .env file in dir (if present) and environment variables.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LLM_PROVIDER", ProviderGroq)
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("SINK", SinkSupabase)
	v.SetDefault("SUPABASE_TABLE", "achievements")
	v.SetDefault("DEDUPE", false)
	v.SetDefault("REPO_DELAY", "500ms")
	v.SetDefault("REPO_RATE_LIMIT", 0)
	v.SetDefault("HTTP_TIMEOUT", "60s")

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	_ = v.ReadInConfig() // Ignore error if file not found

	// Bind environment variables. AutomaticEnv alone does not surface keys
	// without defaults to Unmarshal.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.Sink = strings.ToLower(strings.TrimSpace(cfg.Sink))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks required fields; every missing key is reported at once.
func (c *Config) validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require("GITHUB_TOKEN", c.GithubToken)

	switch c.LLMProvider {
	case ProviderGroq:
		require("GROQ_API_KEY", c.GroqAPIKey)
	case ProviderGemini:
		require("GEMINI_API_KEY", c.GeminiAPIKey)
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGroq, ProviderGemini, c.LLMProvider)
	}

	switch c.Sink {
	case SinkSupabase:
		require("SUPABASE_URL", c.SupabaseURL)
		require("SUPABASE_ANON_KEY", c.SupabaseKey)
	case SinkPostgres:
		require("DB_URL", c.DBURL)
	default:
		return fmt.Errorf("SINK must be %q or %q, got %q", SinkSupabase, SinkPostgres, c.Sink)
	}

	if len(missing) > 0 {
		return &custom_errors.ErrMissingConfig{Keys: missing}
	}

	if c.RepoDelay < 0 {
		return errors.New("REPO_DELAY must not be negative")
	}
	if c.RepoRateLimit < 0 {
		return errors.New("REPO_RATE_LIMIT must not be negative")
	}
	return nil
}

// LLMKey returns the API key of the configured language model provider.
func (c *Config) LLMKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}
