// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package ingest

import (
	"fmt"
	"math/rand/v2"
)

// GenerateOptions controls synthetic sales generation.
type GenerateOptions struct {
	Sales      int    `json:"sales"`
	Products   int    `json:"products"`
	MinPerSale int    `json:"min_per_sale"`
	MaxPerSale int    `json:"max_per_sale"`
	Seed       uint64 `json:"seed"`
}

// DefaultGenerateOptions returns 200 sales over 25 products with 2 to 6
// distinct products each.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Sales:      200,
		Products:   25,
		MinPerSale: 2,
		MaxPerSale: 6,
		Seed:       42,
	}
}

// Validate checks the option ranges.
func (o GenerateOptions) Validate() error {
	switch {
	case o.Sales < 0:
		return fmt.Errorf("sales must be non-negative, got %d", o.Sales)
	case o.Products < 1:
		return fmt.Errorf("products must be at least 1, got %d", o.Products)
	case o.MinPerSale < 1:
		return fmt.Errorf("min_per_sale must be at least 1, got %d", o.MinPerSale)
	case o.MaxPerSale < o.MinPerSale:
		return fmt.Errorf("max_per_sale (%d) must be >= min_per_sale (%d)", o.MaxPerSale, o.MinPerSale)
	case o.MaxPerSale > o.Products:
		return fmt.Errorf("max_per_sale (%d) exceeds products (%d)", o.MaxPerSale, o.Products)
	}
	return nil
}

// Generate returns synthetic nested-shape records. Sale ids run from 1 to
// Sales and product ids from 1 to Products. The same seed yields the same
// records.
func Generate(opts GenerateOptions) ([]Record, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)) //nolint:gosec // demo data
	records := make([]Record, 0, opts.Sales*(opts.MinPerSale+opts.MaxPerSale)/2)

	for sale := 1; sale <= opts.Sales; sale++ {
		n := opts.MinPerSale + rng.IntN(opts.MaxPerSale-opts.MinPerSale+1)
		for _, p := range rng.Perm(opts.Products)[:n] {
			records = append(records, Record{
				nestedSaleKey:    int64(sale),
				nestedProductKey: map[string]any{
					nestedProductIDKey: int64(p + 1),
				},
			})
		}
	}
	return records, nil
}
