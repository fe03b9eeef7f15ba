// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	ws "github.com/tomtom215/allocarte/internal/websocket"
)

type fakeHub struct {
	err  error
	runs atomic.Int32
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	f.runs.Add(1)
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWebSocketHubService_Serve(t *testing.T) {
	t.Run("returns context error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := NewWebSocketHubService(&fakeHub{}).Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("got %v, want DeadlineExceeded", err)
		}
	})

	t.Run("propagates hub errors", func(t *testing.T) {
		hubErr := errors.New("hub failed")
		if err := NewWebSocketHubService(&fakeHub{err: hubErr}).Serve(context.Background()); !errors.Is(err, hubErr) {
			t.Errorf("got %v, want %v", err, hubErr)
		}
	})
}

func TestWebSocketHubService_RealHub(t *testing.T) {
	hub := ws.NewHub()
	sup := suture.New("test", suture.Spec{Timeout: time.Second})
	sup.Add(NewWebSocketHubService(hub))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	if hub.GetClientCount() != 0 {
		t.Errorf("clients = %d, want 0", hub.GetClientCount())
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	if got := NewWebSocketHubService(hub).String(); got != "websocket-hub" {
		t.Errorf("String() = %q", got)
	}
}
