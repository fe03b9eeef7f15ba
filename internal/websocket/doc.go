// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

/*
Package websocket serves live filter sessions over gorilla/websocket.

Every connection owns an indicators engine with its own filter state. The
client sends selection changes, the server answers with the recomputed
filters and outputs.

Key Components:

  - Hub: tracks connected clients and rebinds their engines when a new
    dataset is loaded
  - Client: one connection with its read and write goroutines, its engine
    and an inbound rate limiter
  - Message: typed envelope for every frame

Client messages:

	{"type":"filter","data":{"dimension":"region","values":["Bretagne"]}}
	{"type":"reset"}
	{"type":"ping"}

Server messages:

	{"type":"state","data":{"filters":[...],"outputs":{...}}}
	{"type":"pong"}
	{"type":"error","data":{"code":"VALIDATION_ERROR","message":"..."}}

Inbound frames are limited to 10 per second with a burst of 20. Frames over
the limit are answered with a RATE_LIMITED error and otherwise ignored.

Reloads:

The hub does not watch the dataset itself. Whoever owns the reload
subscription calls Hub.Rebind with the new dataset; the hub binds every
client engine to it, keeping the selections the new data still supports,
and pushes a fresh state to each client.

Thread Safety:

All Hub methods are safe for concurrent use. Client engines are guarded by
their own mutex, so a rebind may race with a filter message without
corrupting state; whichever runs last determines the pushed state.
*/
package websocket
