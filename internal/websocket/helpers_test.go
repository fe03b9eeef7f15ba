// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package websocket

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/allocarte/internal/indicators"
	"github.com/tomtom215/allocarte/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

const (
	payloadV1 = `[
		{"annee_mois":"2023-01","region":"Bretagne","departement":"29","nb_alloc":100,"depense":1000},
		{"annee_mois":"2023-01","region":"Normandie","departement":"14","nb_alloc":300,"depense":4000},
		{"annee_mois":"2023-02","region":"Normandie","departement":"50","nb_alloc":200,"depense":3000}
	]`
	payloadV2 = `[
		{"annee_mois":"2024-01","region":"Bretagne","departement":"35","nb_alloc":150,"depense":1500},
		{"annee_mois":"2024-01","region":"Normandie","departement":"14","nb_alloc":310,"depense":4100},
		{"annee_mois":"2024-01","region":"Occitanie","departement":"31","nb_alloc":500,"depense":9000}
	]`
)

func mustDataset(t *testing.T, payload string) *indicators.Dataset {
	t.Helper()
	store, err := indicators.ParseStore([]byte(payload))
	if err != nil {
		t.Fatalf("ParseStore: %v", err)
	}
	return indicators.NewDataset(store)
}

func boundEngine(t *testing.T, payload string) *indicators.Engine {
	t.Helper()
	e := indicators.NewEngine()
	e.Bind(mustDataset(t, payload))
	return e
}

// startHub runs a hub until the test ends.
func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

// nextMessage waits for the next queued message of c.
func nextMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func filterFor(t *testing.T, state StateData, dim indicators.Dimension) indicators.FilterView {
	t.Helper()
	for _, f := range state.Filters {
		if f.Dimension == dim {
			return f
		}
	}
	t.Fatalf("no filter for %s", dim)
	return indicators.FilterView{}
}
