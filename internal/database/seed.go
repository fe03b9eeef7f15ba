// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package database

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/logging"
)

//go:embed default_users.yaml
var defaultUsersYAML []byte

// SeedUser is a plain-text account definition.
type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type seedFile struct {
	Users []SeedUser `yaml:"users"`
}

// LoadSeedUsers reads account definitions from path, or the built-in
// defaults when path is empty.
func LoadSeedUsers(path string) ([]SeedUser, error) {
	data := defaultUsersYAML
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return ParseSeedUsers(data)
}

// ParseSeedUsers decodes a YAML users list.
func ParseSeedUsers(data []byte) ([]SeedUser, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed users: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("seed file defines no users")
	}
	for i, u := range f.Users {
		if NormalizeUsername(u.Username) == "" || u.Password == "" {
			return nil, fmt.Errorf("seed user %d: username and password are required", i+1)
		}
	}
	return f.Users, nil
}

// SeedDefaultUsers hashes and stores users. With overwrite, existing
// accounts get the seeded password and role; otherwise they are left
// untouched. It returns the number of accounts written.
func SeedDefaultUsers(ctx context.Context, db *DB, users []SeedUser, overwrite bool) (int, error) {
	written := 0
	for _, u := range users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return written, err
		}

		if overwrite {
			if err := db.UpsertUser(ctx, u.Username, hash, u.Role); err != nil {
				return written, err
			}
			written++
			continue
		}

		created, err := db.InsertUserIfMissing(ctx, u.Username, hash, u.Role)
		if err != nil {
			return written, err
		}
		if created {
			written++
		}
	}

	logging.Info().
		Int("written", written).
		Int("defined", len(users)).
		Bool("overwrite", overwrite).
		Msg("Seeded users")
	return written, nil
}
