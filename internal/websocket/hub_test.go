// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package websocket

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/allocarte/internal/indicators"
)

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub.clients == nil || hub.Register == nil || hub.Unregister == nil || hub.rebind == nil {
		t.Fatal("hub not initialized")
	}
	if hub.GetClientCount() != 0 {
		t.Error("new hub should have no clients")
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := startHub(t)
	client := NewClient(hub, nil, boundEngine(t, payloadV1), "alice")

	hub.Register <- client
	waitForClients(t, hub, 1)

	hub.Unregister <- client
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed after unregister")
	}
	if client.enqueue(Message{Type: MessageTypePong}) {
		t.Error("enqueue on a closed client should report false")
	}
}

func TestHub_RebindKeepsSupportedSelections(t *testing.T) {
	hub := startHub(t)
	engine := boundEngine(t, payloadV1)
	if err := engine.Set(indicators.DimRegion, []string{"Normandie"}); err != nil {
		t.Fatal(err)
	}
	if err := engine.Set(indicators.DimYear, []string{"2023"}); err != nil {
		t.Fatal(err)
	}

	client := NewClient(hub, nil, engine, "alice")
	hub.Register <- client
	waitForClients(t, hub, 1)

	v2 := mustDataset(t, payloadV2)
	hub.Rebind(v2)

	msg := nextMessage(t, client)
	if msg.Type != MessageTypeState {
		t.Fatalf("type = %q, want state", msg.Type)
	}
	state := msg.Data.(StateData)
	if !state.Ready {
		t.Error("state should be ready")
	}
	if engine.Dataset() != v2 {
		t.Error("engine not bound to the new dataset")
	}

	region := filterFor(t, state, indicators.DimRegion)
	if !slices.Contains(region.Options, "Occitanie") {
		t.Errorf("region options = %v, want Occitanie from the new dataset", region.Options)
	}
	if !region.Selected.Equal(indicators.Only("Normandie")) {
		t.Errorf("region selection = %v, want Normandie kept", region.Selected.Raw())
	}
	year := filterFor(t, state, indicators.DimYear)
	if !year.Selected.IsAll() {
		t.Errorf("year selection = %v, want all (2023 is gone)", year.Selected.Raw())
	}
}

func TestHub_RebindCoalesces(t *testing.T) {
	hub := NewHub()
	v1 := mustDataset(t, payloadV1)
	v2 := mustDataset(t, payloadV2)

	hub.Rebind(v1)
	hub.Rebind(v2)
	hub.Rebind(nil)

	select {
	case d := <-hub.rebind:
		if d != v2 {
			t.Error("queued dataset should be the newest one")
		}
	default:
		t.Fatal("nothing queued")
	}
	select {
	case <-hub.rebind:
		t.Error("only one dataset should be queued")
	default:
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	clients := []*Client{
		NewClient(hub, nil, boundEngine(t, payloadV1), "a"),
		NewClient(hub, nil, boundEngine(t, payloadV1), "b"),
	}
	for _, c := range clients {
		hub.Register <- c
	}
	waitForClients(t, hub, 2)

	cancel()
	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	if hub.GetClientCount() != 0 {
		t.Errorf("clients left after shutdown: %d", hub.GetClientCount())
	}
	for _, c := range clients {
		if _, ok := <-c.send; ok {
			t.Errorf("client %d send channel still open", c.ID())
		}
	}
}

func TestGetShutdownReason(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(ctx); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled: got %q", got)
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	if got := getShutdownReason(ctx); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline: got %q", got)
	}
}

func TestMarshalMessage(t *testing.T) {
	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"pong"}` {
		t.Errorf("MarshalMessage() = %s", data)
	}
}
