// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Decode parses a JSON array of record objects. Anything else, including an
// array holding non-objects, is ErrMalformedInput.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array of records, got %T", ErrMalformedInput, raw)
	}

	records := make([]Record, len(list))
	for i, v := range list {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T, not an object", ErrMalformedInput, i, v)
		}
		records[i] = rec
	}
	return records, nil
}

// Parse decodes and normalizes a JSON payload.
func Parse(data []byte) (*Batch, error) {
	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Normalize(records)
}

// LoadFile reads and normalizes a JSON sales file.
func LoadFile(path string) (*Batch, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Normalize(records)
}
