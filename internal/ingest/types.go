// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package ingest

import (
	"errors"

	"github.com/tomtom215/breadbasket/internal/basket"
)

// ErrMalformedInput indicates input that is not a JSON array of objects.
var ErrMalformedInput = errors.New("malformed sales input")

// Record is one decoded sales record.
type Record = map[string]any

// Shape identifies a recognized record layout.
type Shape string

const (
	ShapeNested  Shape = "nested"
	ShapeFlat    Shape = "flat"
	ShapeKeyword Shape = "keyword"
)

// Batch is the outcome of normalizing a list of records.
type Batch struct {
	// Transactions are sorted by sale id, each with a canonical itemset.
	Transactions []basket.Transaction

	// Shape is the layout detected from the first record. Empty for empty input.
	Shape Shape

	// SaleField and ProductField name the keys that were read.
	SaleField    string
	ProductField string

	// Records is the number of input records, Skipped how many were ignored.
	Records int
	Skipped int
}

// Stats summarizes a set of transactions.
type Stats struct {
	Transactions   int     `json:"transactions"`
	UniqueItems    int     `json:"unique_items"`
	TotalItems     int     `json:"total_items"`
	MeanBasketSize float64 `json:"mean_basket_size"`
}

// ComputeStats returns summary statistics for txs.
func ComputeStats(txs []basket.Transaction) Stats {
	unique := make(map[basket.Item]struct{})
	total := 0
	for _, tx := range txs {
		total += len(tx.Items)
		for _, item := range tx.Items {
			unique[item] = struct{}{}
		}
	}

	stats := Stats{
		Transactions: len(txs),
		UniqueItems:  len(unique),
		TotalItems:   total,
	}
	if len(txs) > 0 {
		stats.MeanBasketSize = float64(total) / float64(len(txs))
	}
	return stats
}
