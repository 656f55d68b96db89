// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a threshold outside its valid range.
	// It is returned before any mining work starts.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnrecognizedStructure indicates raw input that cannot be mapped onto
	// transactions by any known record shape.
	ErrUnrecognizedStructure = errors.New("unrecognized input structure")
)

// ValidateMinSupport checks that v lies in (0, 1].
func ValidateMinSupport(v float64) error {
	if !(v > 0 && v <= 1) {
		return fmt.Errorf("%w: min_support must be in (0, 1], got %v", ErrInvalidParameter, v)
	}
	return nil
}

// ValidateMinConfidence checks that v lies in [0, 1].
func ValidateMinConfidence(v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: min_confidence must be in [0, 1], got %v", ErrInvalidParameter, v)
	}
	return nil
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
