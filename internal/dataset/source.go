// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package dataset fetches the indicators dataset and keeps the current copy
// shared by every engine.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/allocarte/internal/indicators"
)

// DefaultPath is the dataset file served next to the pages.
const DefaultPath = "evolution_indicateurs_cles_ac.json"

// maxPayloadSize caps HTTP dataset downloads.
const maxPayloadSize = 256 << 20

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch implements indicators.Source.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return data, nil
}

// Name implements indicators.Source.
func (s FileSource) Name() string { return "file" }

// StatusError is returned for a non-2xx dataset response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataset request to %s failed with status %d", e.URL, e.StatusCode)
}

// HTTPSource downloads the dataset with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns an HTTPSource with its own client.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements indicators.Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: s.URL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}
	return data, nil
}

// Name implements indicators.Source.
func (s *HTTPSource) Name() string { return "http" }

// NewSource picks the source for a configured location: http(s) URLs are
// downloaded through a circuit breaker, anything else is a file path.
func NewSource(location string, timeout time.Duration) indicators.Source {
	if location == "" {
		location = DefaultPath
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewBreakerSource(NewHTTPSource(location, timeout))
	}
	return FileSource{Path: location}
}
