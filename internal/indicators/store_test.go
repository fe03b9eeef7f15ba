// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"errors"
	"testing"
)

func TestParseStore_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"object payload", `{"annee_mois":"2023-01"}`, ErrNotArray},
		{"scalar payload", `42`, ErrNotArray},
		{"blank payload", `   `, ErrNotArray},
		{"truncated array", `[{"annee_mois":`, ErrNotArray},
		{"empty array", `[]`, ErrEmptyDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseStore([]byte(tt.payload))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseStore(%s) error = %v, want %v", tt.payload, err, tt.wantErr)
			}
		})
	}
}

func TestParseStore_LenientFields(t *testing.T) {
	t.Parallel()

	payload := `[
		1,
		{"annee_mois":"2023-01","region":"I\u0302le-de-France","departement":75,
		 "nb_alloc":"12","depense":null,"aj_moy":"n/a","nb_od":3.5,
		 "geo_departement":{"type":"Feature","properties":{"code":"75"}}},
		{"annee_mois":"2023-02","departement":"Total","geo_departement":"broken"}
	]`

	store, err := ParseStore([]byte(payload))
	if err != nil {
		t.Fatalf("ParseStore: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", store.Len())
	}

	records := store.Records()
	if records[0].HasPeriod() {
		t.Error("non-object element must decode as a record without period")
	}

	r := records[1]
	if r.Region != "\u00cele-de-France" {
		t.Errorf("expected NFC region name, got %q", r.Region)
	}
	if r.Department != "75" {
		t.Errorf("expected numeric department decoded as \"75\", got %q", r.Department)
	}
	if r.Allocataires != 12 || r.Spend != 0 || r.DailyAllowance != 0 || r.RightsOpened != 3.5 {
		t.Errorf("unexpected numeric fields: %+v", r)
	}
	if !r.Geometry.IsFeature() {
		t.Error("expected a GeoJSON feature")
	}
	if records[2].Geometry != nil {
		t.Error("non-object geometry must be dropped")
	}
}

func TestStore_RecordsIsACopy(t *testing.T) {
	t.Parallel()

	store := NewStore(sampleRecords())
	records := store.Records()
	records[0].Allocataires = -1

	if store.Records()[0].Allocataires == -1 {
		t.Error("mutating Records() output must not change the store")
	}
}
