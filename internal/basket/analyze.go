// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"context"
	"time"
)

// Analysis is the complete outcome of one run.
type Analysis struct {
	Table    *FrequentTable
	Rules    []Rule
	Result   *Result
	Duration time.Duration
}

// Analyze validates params, mines txs, derives rules and assembles the
// exported result. Both thresholds are checked before any work starts, so an
// invalid parameter never leaves partial output behind.
//
//nolint:gocritic // Params is small and copied by value across the package
func Analyze(ctx context.Context, txs []Transaction, params Params) (*Analysis, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := Mine(ctx, txs, params.MineOptions)
	if err != nil {
		return nil, err
	}

	rules, err := GenerateRules(table, params.MinConfidence)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Table:    table,
		Rules:    rules,
		Result:   Assemble(params, table, rules),
		Duration: time.Since(start),
	}, nil
}
