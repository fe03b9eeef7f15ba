// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package supervisor runs the long-lived parts of the server under suture v4.

	RootSupervisor ("allocarte")
	├── DataSupervisor ("data-layer")
	│   └── CleanupService (expired sessions and filter engines)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── DatasetRebindService (reloads → live sessions)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are logged
through sutureslog on top of the zerolog slog adapter:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)

The service wrappers live in the services subpackage.
*/
package supervisor
