// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package config provides centralized configuration management for Allocarte.

Configuration is layered with Koanf v2:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, or config.yaml / /etc/allocarte/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development or production (default: development)

Security:
  - AUTH_MODE: session or jwt (default: session)
  - JWT_SECRET: HS256 secret, at least 32 characters in jwt mode
  - SESSION_TIMEOUT: Session lifetime, slid forward on use (default: 24h)
  - SESSION_STORE: memory or badger (default: memory)
  - SESSION_STORE_PATH: BadgerDB directory (default: /data/sessions)
  - COOKIE_SECURE: Mark the login cookie Secure (default: false)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT: API rate limit
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - SEED_DEFAULT_USERS: Create missing default users at startup
  - SEED_USERS_FILE: YAML file replacing the built-in default users
  - ENGINE_CACHE_SIZE: Per-session filter engines kept in memory (default: 1000)
  - CASBIN_MODEL_PATH, CASBIN_POLICY_PATH: Override the embedded RBAC files

Database:
  - DB_DRIVER: duckdb or sqlite (default: duckdb)
  - DB_PATH: Database file (default: /data/allocarte.duckdb)

Dataset:
  - DATASET_SOURCE: File path or http(s) URL of the indicators JSON
  - DATASET_TIMEOUT: Fetch timeout for remote sources (default: 30s)

Web:
  - STATIC_DIR: Directory with the login and dashboard pages (default: public)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
