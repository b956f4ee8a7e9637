// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	setEnv(t, "CONSOLE_API_BASE_URL", "http://localhost:5000")
	setEnv(t, "CONSOLE_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/console.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/console.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("CacheTTL = %d, want 300", cfg.CacheTTL)
	}
	if cfg.EventRetentionDays != 90 {
		t.Errorf("EventRetentionDays = %d, want 90", cfg.EventRetentionDays)
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true with no Redis URL configured")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setRequired(t)
	setEnv(t, "CONSOLE_DB_PATH", "/custom/path.db")
	setEnv(t, "CONSOLE_SERVER_HOST", "0.0.0.0")
	setEnv(t, "CONSOLE_SERVER_PORT", "3000")
	setEnv(t, "CONSOLE_ENV", "production")
	setEnv(t, "CONSOLE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false for production")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false with Redis URL configured")
	}
}

func TestLoad_MissingAPIBaseURL(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CONSOLE_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without CONSOLE_API_BASE_URL")
	}
}

func TestLoad_InvalidAPIBaseURL(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CONSOLE_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "CONSOLE_API_BASE_URL", "backend.internal:5000")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted a non-http base URL")
	}
	if !strings.Contains(err.Error(), "CONSOLE_API_BASE_URL") {
		t.Errorf("error %q does not name the offending variable", err)
	}
}

func TestLoad_ShortSessionSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CONSOLE_API_BASE_URL", "http://localhost:5000")
	setEnv(t, "CONSOLE_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a short session secret")
	}
}

func TestLoad_WeakSessionSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CONSOLE_API_BASE_URL", "http://localhost:5000")
	setEnv(t, "CONSOLE_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a known default session secret")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{"three classes", "abcDEF123abcDEF123abcDEF123abcDE", true},
		{"lowercase only", "abcdefghijklmnopqrstuvwxyzabcdef", false},
		{"two classes", "abcdef123456abcdef123456abcdef12", false},
		{"with specials", "abc!DEF!abc!DEF!abc!DEF!abc!DEF!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasMinimumEntropy(tt.secret); got != tt.want {
				t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
			}
		})
	}
}
