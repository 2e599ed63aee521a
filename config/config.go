package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Defaults applied before the config file and environment.
const (
	DefaultAddr               = ":8080"
	DefaultMistralBaseURL     = "https://api.mistral.ai"
	DefaultTranscriptionModel = "voxtral-mini-2507"
	DefaultChatModel          = "voxtral-mini-2507"
	DefaultRequestTimeout     = 5 * time.Minute
	DefaultFetchTimeout       = time.Minute
	DefaultMaxUploadBytes     = 50 << 20
	DefaultInsightWorkers     = 2
	DefaultReportsTable       = "interview_reports"
)

// DefaultFillerWords is the filler list used when none is configured.
var DefaultFillerWords = []string{"um", "uh", "like", "you know", "actually", "basically"}

type Config struct {
	Addr               string        `validate:"required"`
	MistralAPIKey      string        // may be empty; the UI can supply a key per request
	MistralBaseURL     string        `validate:"required,url"`
	TranscriptionModel string        `validate:"required"`
	ChatModel          string        `validate:"required"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	FetchTimeout       time.Duration `validate:"gt=0"`
	MaxUploadBytes     int64         `validate:"gt=0"`
	InsightWorkers     int           `validate:"gte=1,lte=16"`
	FillerWords        []string
	LogLevel           string `validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	LogFormat          string `validate:"omitempty,oneof=json text"`
	SupabaseURL        string `validate:"omitempty,url"`
	SupabaseKey        string
	ReportsTable       string `validate:"required"`
}

type fileConfig struct {
	Addr               string   `toml:"addr"`
	MistralAPIKey      string   `toml:"mistral_api_key"`
	MistralBaseURL     string   `toml:"mistral_base_url"`
	TranscriptionModel string   `toml:"transcription_model"`
	ChatModel          string   `toml:"chat_model"`
	RequestTimeout     string   `toml:"request_timeout"`
	FetchTimeout       string   `toml:"fetch_timeout"`
	MaxUploadBytes     int64    `toml:"max_upload_bytes"`
	InsightWorkers     int      `toml:"insight_workers"`
	FillerWords        []string `toml:"filler_words"`
	LogLevel           string   `toml:"log_level"`
	LogFormat          string   `toml:"log_format"`
	SupabaseURL        string   `toml:"supabase_url"`
	SupabaseKey        string   `toml:"supabase_service_key"`
	ReportsTable       string   `toml:"reports_table"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:               DefaultAddr,
		MistralBaseURL:     DefaultMistralBaseURL,
		TranscriptionModel: DefaultTranscriptionModel,
		ChatModel:          DefaultChatModel,
		RequestTimeout:     DefaultRequestTimeout,
		FetchTimeout:       DefaultFetchTimeout,
		MaxUploadBytes:     DefaultMaxUploadBytes,
		InsightWorkers:     DefaultInsightWorkers,
		FillerWords:        append([]string(nil), DefaultFillerWords...),
		LogLevel:           "info",
		LogFormat:          "json",
		ReportsTable:       DefaultReportsTable,
	}
}

// Load builds the configuration from ./.env, the optional TOML file and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := Default()

	if path := configFilePath(); path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := fc.apply(cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if (c.SupabaseURL == "") != (c.SupabaseKey == "") {
		return fmt.Errorf("invalid configuration: supabase url and service key must be set together")
	}
	return nil
}

// ArchiveEnabled reports whether finished reports should be stored in Supabase.
func (c *Config) ArchiveEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func (fc fileConfig) apply(cfg *Config) error {
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.MistralAPIKey != "" {
		cfg.MistralAPIKey = fc.MistralAPIKey
	}
	if fc.MistralBaseURL != "" {
		cfg.MistralBaseURL = fc.MistralBaseURL
	}
	if fc.TranscriptionModel != "" {
		cfg.TranscriptionModel = fc.TranscriptionModel
	}
	if fc.ChatModel != "" {
		cfg.ChatModel = fc.ChatModel
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if fc.FetchTimeout != "" {
		d, err := time.ParseDuration(fc.FetchTimeout)
		if err != nil {
			return fmt.Errorf("fetch_timeout: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if fc.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = fc.MaxUploadBytes
	}
	if fc.InsightWorkers > 0 {
		cfg.InsightWorkers = fc.InsightWorkers
	}
	if len(fc.FillerWords) > 0 {
		cfg.FillerWords = fc.FillerWords
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.SupabaseURL != "" {
		cfg.SupabaseURL = fc.SupabaseURL
	}
	if fc.SupabaseKey != "" {
		cfg.SupabaseKey = fc.SupabaseKey
	}
	if fc.ReportsTable != "" {
		cfg.ReportsTable = fc.ReportsTable
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("MISTRAL_API_KEY"); v != "" {
		cfg.MistralAPIKey = v
	}
	if v := os.Getenv("MISTRAL_BASE_URL"); v != "" {
		cfg.MistralBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("INTERVIEW_ANALYZER_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("INTERVIEW_ANALYZER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("INTERVIEW_ANALYZER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("INTERVIEW_ANALYZER_INSIGHT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INTERVIEW_ANALYZER_INSIGHT_WORKERS: %w", err)
		}
		cfg.InsightWorkers = n
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_KEY"); v != "" {
		cfg.SupabaseKey = v
	}
	return nil
}

func configFilePath() string {
	if p := strings.TrimSpace(os.Getenv("INTERVIEW_ANALYZER_CONFIG")); p != "" {
		return p
	}

	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "interview-analyzer")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "interview-analyzer")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
