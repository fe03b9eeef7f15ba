// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import "errors"

// Common API errors
var (
	// ErrNoSession is returned when a handler needs a session the request
	// does not carry.
	ErrNoSession = errors.New("no session")

	// ErrUnknownView is returned for a view name no presenter serves.
	ErrUnknownView = errors.New("unknown view")
)

// Texts of the login page flow.
const (
	// retourLink follows every login failure message.
	retourLink = " <a href='/'>Retour</a>"

	// sqlErrorText answers a login that failed on the user store.
	sqlErrorText = "Erreur SQL"

	// tooManyAttemptsText answers a rate-limited login.
	tooManyAttemptsText = "Trop de tentatives, réessayez plus tard"
)
