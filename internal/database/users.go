// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/allocarte/internal/auth"
)

// User is a stored dashboard account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeUsername trims surrounding space and applies NFC so that the
// same name typed with composed or decomposed accents matches.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

const selectUserColumns = `SELECT id, username, password, role, created_at, updated_at FROM users`

// GetUserByUsername returns the user named username, or ErrUserNotFound.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := db.conn.QueryRowContext(ctx, selectUserColumns+` WHERE username = ?`, NormalizeUsername(username))

	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// ListUsers returns all users ordered by username.
func (db *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := db.conn.QueryContext(ctx, selectUserColumns+` ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpsertUser inserts a user, or replaces the password hash and role of an
// existing user with the same name.
func (db *DB) UpsertUser(ctx context.Context, username, passwordHash, role string) error {
	username, role, err := checkUser(username, passwordHash, role)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO users (id, username, password, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET
			password = excluded.password,
			role = excluded.role,
			updated_at = excluded.updated_at`,
		uuid.NewString(), username, passwordHash, role, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", username, err)
	}
	return nil
}

// InsertUserIfMissing creates the user unless the name is already taken.
// It reports whether a row was written.
func (db *DB) InsertUserIfMissing(ctx context.Context, username, passwordHash, role string) (bool, error) {
	username, role, err := checkUser(username, passwordHash, role)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (id, username, password, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING`,
		uuid.NewString(), username, passwordHash, role, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to insert user %s: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteUser removes a user. It returns ErrUserNotFound when nothing was
// deleted.
func (db *DB) DeleteUser(ctx context.Context, username string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, NormalizeUsername(username))
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func checkUser(username, passwordHash, role string) (string, string, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return "", "", fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return "", "", fmt.Errorf("password hash is required for %s", username)
	}
	if role == "" {
		role = auth.RoleUser
	}
	if role != auth.RoleUser && role != auth.RoleAdmin {
		return "", "", fmt.Errorf("invalid role %q for %s", role, username)
	}
	return username, role, nil
}

// FindAccount implements auth.AccountStore.
func (db *DB) FindAccount(ctx context.Context, username string) (*auth.Account, error) {
	u, err := db.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}, nil
}
