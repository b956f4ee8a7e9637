// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// CacheBackendType identifies the configured cache backend.
type CacheBackendType string

const (
	CacheBackendMemory CacheBackendType = "memory"
	CacheBackendRedis  CacheBackendType = "redis"
)

// CacheConfig holds configuration for cache creation.
type CacheConfig struct {
	// Type is the cache backend: "memory" or "redis"
	Type string

	// RedisURL is the Redis connection URL (only for redis type)
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis
	Prefix string

	// FallbackToMemory falls back to the in-memory backend when Redis is
	// unreachable instead of failing startup
	FallbackToMemory bool

	// DefaultTTL is the default TTL for cache entries
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache (0 = unlimited)
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup
	CleanupInterval time.Duration
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Type:            "memory",
		DefaultTTL:      5 * time.Minute,
		MaxSize:         256,
		CleanupInterval: time.Minute,
	}
}

// CacheResult reports which backend NewCacheWithInfo actually created.
type CacheResult struct {
	Cache       Cacher
	BackendType CacheBackendType
	IsFallback  bool
}

// NewCache creates a cache based on the provided configuration.
func NewCache(cfg CacheConfig) (Cacher, error) {
	result, err := NewCacheWithInfo(cfg)
	if err != nil {
		return nil, err
	}
	return result.Cache, nil
}

// NewCacheWithInfo creates a cache and reports the backend in use. When the
// Redis backend is requested but unreachable and FallbackToMemory is set, it
// returns an in-memory cache flagged as a fallback.
func NewCacheWithInfo(cfg CacheConfig) (*CacheResult, error) {
	if cfg.Type == "redis" {
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis cache requested but no URL configured")
		}

		redisCache, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			return &CacheResult{Cache: redisCache, BackendType: CacheBackendRedis}, nil
		}

		if !cfg.FallbackToMemory {
			return nil, fmt.Errorf("connecting to redis at %s: %w", maskRedisURL(cfg.RedisURL), err)
		}

		slog.Warn("cache falling back to memory backend",
			"category", "cache",
			"redis_url", maskRedisURL(cfg.RedisURL),
			"error", err,
		)
		return &CacheResult{
			Cache:       newMemoryFromConfig(cfg),
			BackendType: CacheBackendMemory,
			IsFallback:  true,
		}, nil
	}

	return &CacheResult{
		Cache:       newMemoryFromConfig(cfg),
		BackendType: CacheBackendMemory,
	}, nil
}

func newMemoryFromConfig(cfg CacheConfig) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// NewCacheWithTTL creates a simple memory cache with the specified TTL.
func NewCacheWithTTL(ttl time.Duration) Cacher {
	return NewSimpleMemoryCache(ttl)
}

// maskRedisURL replaces any userinfo in a Redis URL with *** for logging.
func maskRedisURL(u string) string {
	schemeIdx := strings.Index(u, "://")
	atIdx := strings.LastIndex(u, "@")
	if schemeIdx < 0 || atIdx < 0 || atIdx < schemeIdx {
		return u
	}
	return u[:schemeIdx+3] + "***" + u[atIdx:]
}

// SanitizeRedisURL masks the password in a Redis URL, keeping the username,
// so it can be logged.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
