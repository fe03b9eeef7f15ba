// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/metrics"
)

// Login errors. Their text is shown to the user as is.
var (
	ErrMissingCredentials = errors.New("Veuillez entrer identifiant et mot de passe") //nolint:staticcheck // user-facing text
	ErrUnknownUser        = errors.New("Utilisateur inconnu")                         //nolint:staticcheck // user-facing text
	ErrWrongPassword      = errors.New("Mot de passe incorrect")                      //nolint:staticcheck // user-facing text
)

// ErrAccountNotFound is returned by an AccountStore for unknown usernames.
var ErrAccountNotFound = errors.New("account not found")

// Account is the stored view of a user needed to log in.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
}

// AccountStore looks up accounts by username.
type AccountStore interface {
	FindAccount(ctx context.Context, username string) (*Account, error)
}

// Authenticator checks username/password pairs against an AccountStore.
type Authenticator struct {
	store AccountStore
}

// NewAuthenticator creates an authenticator over store.
func NewAuthenticator(store AccountStore) *Authenticator {
	return &Authenticator{store: store}
}

// Login verifies credentials. It returns one of the login errors for a
// rejected attempt and a wrapped store error for anything else.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*AuthSubject, error) {
	if username == "" || password == "" {
		metrics.RecordLogin("missing_credentials")
		return nil, ErrMissingCredentials
	}

	account, err := a.store.FindAccount(ctx, username)
	if errors.Is(err, ErrAccountNotFound) {
		metrics.RecordLogin("unknown_user")
		logging.Ctx(ctx).Info().Str("username", username).Msg("Login rejected: unknown user")
		return nil, ErrUnknownUser
	}
	if err != nil {
		metrics.RecordLogin("error")
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if !ComparePassword(password, account.PasswordHash) {
		metrics.RecordLogin("wrong_password")
		logging.Ctx(ctx).Info().Str("username", username).Msg("Login rejected: wrong password")
		return nil, ErrWrongPassword
	}

	role := account.Role
	if role == "" {
		role = RoleUser
	}
	metrics.RecordLogin("success")
	return &AuthSubject{
		ID:       account.ID,
		Username: account.Username,
		Role:     role,
	}, nil
}

// IsLoginError reports whether err is a rejected login rather than a
// server failure.
func IsLoginError(err error) bool {
	return errors.Is(err, ErrMissingCredentials) || errors.Is(err, ErrUnknownUser) || errors.Is(err, ErrWrongPassword)
}
