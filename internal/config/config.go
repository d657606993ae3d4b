package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Attendee data store (Postgres)
	DatabaseURL   string `json:"database_url"`
	AttendeeTable string `json:"attendee_table"`

	// Query pipeline
	QueryTimeoutMs int `json:"query_timeout_ms"` // bounded executor budget
	RowLimit       int `json:"row_limit"`        // hard ceiling on returned rows
	HistoryWindow  int `json:"history_window"`   // trailing turns fed to synthesis

	// Security
	ForbiddenColumns   []string `json:"forbidden_columns"`
	PIIKeywords        []string `json:"pii_keywords"`
	EnableDataMasking  bool     `json:"enable_data_masking"`
	EnableAuditLogging bool     `json:"enable_audit_logging"`

	// Completion service
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for custom proxy
	Model            string `json:"model"`
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMs) * time.Millisecond
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		EnableAuth:         true,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		AttendeeTable:      DefaultAttendeeTable,
		QueryTimeoutMs:     DefaultQueryTimeoutMs,
		RowLimit:           DefaultRowLimit,
		HistoryWindow:      DefaultHistoryWindow,
		ForbiddenColumns:   DefaultForbiddenColumns,
		PIIKeywords:        DefaultPIIKeywords,
		EnableDataMasking:  true,
		EnableAuditLogging: true,
	}

	// Load from JSON config file if specified
	if path := getEnv("ATTENDAI_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("ATTENDAI_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("ATTENDAI_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("ATTENDAI_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("ATTENDAI_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("ATTENDAI_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("DATABASE_URL", ""); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getEnv("ATTENDAI_ATTENDEE_TABLE", ""); v != "" {
		cfg.AttendeeTable = v
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("ATTENDAI_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("ATTENDAI_QUERY_TIMEOUT_MS", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.QueryTimeoutMs = t
		}
	}
	if v := getEnv("ATTENDAI_ROW_LIMIT", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RowLimit = n
		}
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
