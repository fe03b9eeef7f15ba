// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package database stores dashboard user accounts.

Two embedded drivers are supported through database/sql:

  - duckdb (github.com/duckdb/duckdb-go/v2), the default
  - sqlite (modernc.org/sqlite), a pure Go alternative

The schema is managed by versioned migrations recorded in schema_migrations.
Usernames are NFC-normalized before storage and lookup so that composed
and decomposed accented names refer to the same account.

# Seeding

SeedDefaultUsers creates the default accounts (admin and user) from an
embedded YAML list, or from a YAML file with the same shape:

	users:
	  - username: admin
	    password: admin1234
	    role: admin

Passwords are hashed with bcrypt (cost 10) before they are written.
*/
package database
