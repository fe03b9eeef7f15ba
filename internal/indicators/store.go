// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package indicators

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNotArray is returned when the payload is not a JSON array.
	ErrNotArray = errors.New("dataset payload is not a JSON array")

	// ErrEmptyDataset is returned when the payload is an empty array.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// Store holds the raw dataset. It is immutable once built.
type Store struct {
	records []Record
}

// NewStore builds a store from already decoded records. The slice is copied.
func NewStore(records []Record) *Store {
	return &Store{records: slices.Clone(records)}
}

// ParseStore decodes a JSON array of indicator records.
//
// Elements that are not objects, and fields of the wrong type, never fail
// the load: they decode as zero values and drop out of every period-scoped
// view because they carry no period key.
func ParseStore(data []byte) (*Store, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if len(elements) == 0 {
		return nil, ErrEmptyDataset
	}

	records := make([]Record, len(elements))
	for i, el := range elements {
		var raw rawRecord
		if len(el) == 0 || el[0] != '{' {
			continue
		}
		if err := json.Unmarshal(el, &raw); err != nil {
			continue
		}
		records[i] = raw.record()
	}
	return &Store{records: records}, nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Records returns a copy of the records.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records)
}

// normalizeName trims and NFC-normalizes a territory name so that
// composed and decomposed accents compare equal.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
