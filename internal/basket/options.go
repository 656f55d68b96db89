// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"fmt"
	"runtime"
)

// Default thresholds used when the caller supplies none.
const (
	DefaultMinSupport    = 0.1
	DefaultMinConfidence = 0.5
)

// MineOptions controls frequent-itemset mining.
type MineOptions struct {
	// MinSupport is the minimum fraction of transactions that must contain
	// an itemset for it to be frequent. Valid range: (0, 1].
	MinSupport float64 `json:"min_support"`

	// MaxLength caps the itemset size. Zero means unbounded.
	MaxLength int `json:"max_length"`

	// Workers bounds the number of goroutines counting support within a
	// level. Zero or negative uses GOMAXPROCS.
	Workers int `json:"workers"`

	// PruneSubsets drops join candidates that have an infrequent
	// (k-1)-subset before their support is counted. The mined table is the
	// same either way; pruning only saves counting work.
	PruneSubsets bool `json:"prune_subsets"`
}

// DefaultMineOptions returns the default mining options.
func DefaultMineOptions() MineOptions {
	return MineOptions{
		MinSupport:   DefaultMinSupport,
		PruneSubsets: true,
	}
}

// Validate checks the options for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (o MineOptions) Validate() error {
	if err := ValidateMinSupport(o.MinSupport); err != nil {
		return err
	}
	if o.MaxLength < 0 {
		return fmt.Errorf("%w: max_length must be non-negative, got %d", ErrInvalidParameter, o.MaxLength)
	}
	return nil
}

func (o MineOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Params bundles every threshold of a full analysis run.
type Params struct {
	MineOptions

	// MinConfidence is the minimum confidence for an emitted rule.
	// Valid range: [0, 1].
	MinConfidence float64 `json:"min_confidence"`
}

// DefaultParams returns the default analysis parameters.
func DefaultParams() Params {
	return Params{
		MineOptions:   DefaultMineOptions(),
		MinConfidence: DefaultMinConfidence,
	}
}

// Validate checks both thresholds.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (p Params) Validate() error {
	if err := p.MineOptions.Validate(); err != nil {
		return err
	}
	return ValidateMinConfidence(p.MinConfidence)
}
