// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the console configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string `env:"CONSOLE_API_BASE_URL,required"`
	DBPath        string `env:"CONSOLE_DB_PATH" envDefault:"./data/console.db"`
	SessionSecret string `env:"CONSOLE_SESSION_SECRET,required"`
	ServerHost    string `env:"CONSOLE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"CONSOLE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"CONSOLE_ENV" envDefault:"development"`
	LogLevel      string `env:"CONSOLE_LOG_LEVEL" envDefault:"info"`

	// Cache configuration for the category/sub-category pickers.
	RedisURL     string `env:"CONSOLE_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CONSOLE_CACHE_PREFIX" envDefault:"lsc:"`  // Redis key prefix
	CacheTTL     int    `env:"CONSOLE_CACHE_TTL" envDefault:"300"`      // Picker cache TTL in seconds
	CacheMaxSize int    `env:"CONSOLE_CACHE_MAX_SIZE" envDefault:"256"` // Max memory cache entries

	// Event log retention, in days. Pruned by the scheduler.
	EventRetentionDays int `env:"CONSOLE_EVENT_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the console is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session
// secret. AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("CONSOLE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("CONSOLE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("CONSOLE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, fmt.Errorf("CONSOLE_API_BASE_URL must be an http(s) URL, got %q", cfg.APIBaseURL)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character
// classes (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
