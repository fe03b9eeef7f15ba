// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package main is the entry point for the Allocarte server.

Allocarte serves a login-protected dashboard of the key unemployment
insurance indicators. Each logged-in session gets its own filter engine
over the shared dataset; the pages read computed views from the JSON API or
over a websocket.

# Application Architecture

	RootSupervisor ("allocarte")
	├── DataSupervisor ("data-layer")
	│   └── CleanupService (expired sessions and engines)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub
	│   └── Dataset rebind (reload events → live sessions)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. User store: DuckDB or SQLite, optional default user seeding
 4. Sessions: server-side (memory or BadgerDB) or JWT cookies
 5. Authorization: Casbin policy
 6. Dataset: first load from file or URL; a failure is logged and the
    server starts without data until a reload succeeds
 7. Supervisor tree and HTTP server

# Configuration

	HTTP_PORT=8080
	DATASET_SOURCE=evolution_indicateurs_cles_ac.json   # or an http(s) URL
	DB_DRIVER=duckdb                                     # or sqlite
	DB_PATH=/data/allocarte.duckdb
	AUTH_MODE=session                                    # or jwt (needs JWT_SECRET)
	SESSION_STORE=memory                                 # or badger
	SEED_DEFAULT_USERS=true
	LOG_LEVEL=info LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree: the HTTP server drains for
up to 10s, websocket clients receive a close frame, then the session store,
dataset loader and database are closed.

# API Documentation

Swagger UI is served at /swagger/index.html.
*/
package main
