// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Command seedusers writes the default dashboard accounts into the user
// store. Existing accounts get the seeded password and role.
//
//	seedusers                      # built-in admin and user accounts
//	seedusers --file users.yaml    # accounts from a YAML file
//
// The store is located with the server configuration (DB_DRIVER, DB_PATH,
// config.yaml).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/allocarte/internal/config"
	"github.com/tomtom215/allocarte/internal/database"
	"github.com/tomtom215/allocarte/internal/logging"
)

func main() {
	file := flag.String("file", "", "YAML users file (defaults to the built-in admin and user accounts)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: seedusers [--file users.yaml]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
File format:
  users:
    - username: admin
      password: admin1234
      role: admin
`)
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := seed(&cfg.Database, *file); err != nil {
		logging.Fatal().Err(err).Msg("Seeding failed")
	}
}

func seed(cfg *config.DatabaseConfig, file string) error {
	users, err := database.LoadSeedUsers(file)
	if err != nil {
		return err
	}

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	written, err := database.SeedDefaultUsers(ctx, db, users, true)
	if err != nil {
		return err
	}
	logging.Info().
		Int("users", written).
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Msg("Users seeded")
	return nil
}
