// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Database DatabaseConfig `koanf:"database"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Web      WebConfig      `koanf:"web"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development" or "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds authentication, session and rate limit settings.
type SecurityConfig struct {
	AuthMode       string        `koanf:"auth_mode"` // "session" or "jwt"
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// SessionStore is "memory" or "badger". Badger sessions survive restarts.
	SessionStore     string `koanf:"session_store"`
	SessionStorePath string `koanf:"session_store_path"`
	CookieSecure     bool   `koanf:"cookie_secure"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	SeedDefaultUsers bool   `koanf:"seed_default_users"`
	SeedUsersFile    string `koanf:"seed_users_file"`

	// EngineCacheSize bounds the number of per-session filter engines.
	EngineCacheSize int `koanf:"engine_cache_size"`

	Casbin CasbinConfig `koanf:"casbin"`
}

// CasbinConfig holds authorization policy settings. Empty paths select the
// embedded model and policy.
type CasbinConfig struct {
	ModelPath  string        `koanf:"model_path"`
	PolicyPath string        `koanf:"policy_path"`
	CacheSize  int           `koanf:"cache_size"`
	CacheTTL   time.Duration `koanf:"cache_ttl"`
}

// DatabaseConfig holds the user store settings.
type DatabaseConfig struct {
	Driver string `koanf:"driver"` // "duckdb" or "sqlite"
	Path   string `koanf:"path"`
}

// DatasetConfig locates the indicators JSON.
type DatasetConfig struct {
	// Source is a file path or an http(s) URL.
	Source  string        `koanf:"source"`
	Timeout time.Duration `koanf:"timeout"`
}

// WebConfig holds static page settings.
type WebConfig struct {
	StaticDir string `koanf:"static_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads the layered configuration and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
