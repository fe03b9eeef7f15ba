// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package auth

import (
	"context"
	"errors"
	"testing"
)

type fakeAccounts struct {
	accounts map[string]*Account
	err      error
}

func (f *fakeAccounts) FindAccount(_ context.Context, username string) (*Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	account, ok := f.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func newFakeAccounts(t *testing.T) *fakeAccounts {
	t.Helper()
	adminHash, err := HashPassword("admin1234")
	if err != nil {
		t.Fatal(err)
	}
	userHash, err := HashPassword("user1234")
	if err != nil {
		t.Fatal(err)
	}
	return &fakeAccounts{accounts: map[string]*Account{
		"admin": {ID: "1", Username: "admin", PasswordHash: adminHash, Role: RoleAdmin},
		"user":  {ID: "2", Username: "user", PasswordHash: userHash},
	}}
}

func TestAuthenticator_Login(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(newFakeAccounts(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantRole string
	}{
		{"admin", "admin", "admin1234", nil, RoleAdmin},
		{"empty role defaults to user", "user", "user1234", nil, RoleUser},
		{"missing username", "", "admin1234", ErrMissingCredentials, ""},
		{"missing password", "admin", "", ErrMissingCredentials, ""},
		{"unknown user", "ghost", "whatever", ErrUnknownUser, ""},
		{"wrong password", "admin", "user1234", ErrWrongPassword, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := a.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login err = %v, want %v", err, tt.wantErr)
				}
				if !IsLoginError(err) {
					t.Error("IsLoginError = false for a rejected login")
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if subject.Username != tt.username || subject.Role != tt.wantRole {
				t.Errorf("subject = %+v, want %s/%s", subject, tt.username, tt.wantRole)
			}
		})
	}
}

func TestAuthenticator_StoreFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("database locked")
	a := NewAuthenticator(&fakeAccounts{err: boom})

	_, err := a.Login(context.Background(), "admin", "admin1234")
	if !errors.Is(err, boom) {
		t.Fatalf("Login err = %v, want wrapped store error", err)
	}
	if IsLoginError(err) {
		t.Error("a store failure is not a rejected login")
	}
}

func TestLoginErrorTexts(t *testing.T) {
	t.Parallel()

	if ErrMissingCredentials.Error() != "Veuillez entrer identifiant et mot de passe" {
		t.Errorf("unexpected text %q", ErrMissingCredentials.Error())
	}
	if ErrUnknownUser.Error() != "Utilisateur inconnu" {
		t.Errorf("unexpected text %q", ErrUnknownUser.Error())
	}
	if ErrWrongPassword.Error() != "Mot de passe incorrect" {
		t.Errorf("unexpected text %q", ErrWrongPassword.Error())
	}
}
