// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{"dashboard view", "GET", "/api/v1/views/dashboard", "200"},
		{"filter update", "POST", "/api/v1/filters", "200"},
		{"not ready", "GET", "/api/v1/views/indicators", "503"},
		{"unauthorized", "GET", "/api/v1/filters", "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 5*time.Millisecond)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("expected counter to grow by 1, got %v -> %v", before, after)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected %v active requests, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected %v active requests, got %v", before, got)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad("file", 42, nil)
	if got := testutil.ToFloat64(DatasetRecords); got != 42 {
		t.Errorf("expected 42 records, got %v", got)
	}

	failures := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("file", "failure"))
	RecordDatasetLoad("file", 0, errors.New("boom"))
	if got := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("file", "failure")); got != failures+1 {
		t.Errorf("expected failure counter to grow, got %v", got)
	}
	if got := testutil.ToFloat64(DatasetRecords); got != 42 {
		t.Errorf("failed load must keep record gauge at 42, got %v", got)
	}
}

func TestEngineRecomputeHistogram(t *testing.T) {
	EngineRecomputeDuration.Observe(0.002)

	var m dto.Metric
	if err := EngineRecomputeDuration.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("expected at least one observation")
	}
}

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("wrong_password"))
	RecordLogin("wrong_password")
	if got := testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues("wrong_password")); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
}

func TestRecordAuthzDecision(t *testing.T) {
	allow := AuthzDecisionsTotal.WithLabelValues("admin", "POST", "allow")
	deny := AuthzDecisionsTotal.WithLabelValues("user", "POST", "deny")
	beforeAllow, beforeDeny := testutil.ToFloat64(allow), testutil.ToFloat64(deny)

	RecordAuthzDecision("admin", "POST", true)
	RecordAuthzDecision("user", "POST", false)

	if got := testutil.ToFloat64(allow); got != beforeAllow+1 {
		t.Errorf("allow counter = %v, want %v", got, beforeAllow+1)
	}
	if got := testutil.ToFloat64(deny); got != beforeDeny+1 {
		t.Errorf("deny counter = %v, want %v", got, beforeDeny+1)
	}
}
