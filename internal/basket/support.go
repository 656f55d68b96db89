// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many candidates a worker counts between
// context checks.
const cancelCheckInterval = 64

// supportCounter counts itemset occurrences over a fixed, read-only set of
// canonical transactions.
type supportCounter struct {
	baskets []Itemset
}

// newSupportCounter snapshots the item sets of txs. Transactions that are
// not already canonical are canonicalized on a copy; the caller's slices are
// never modified.
func newSupportCounter(txs []Transaction) *supportCounter {
	baskets := make([]Itemset, len(txs))
	for i := range txs {
		items := txs[i].Items
		if !items.isCanonical() {
			items = NewItemset(items...)
		}
		baskets[i] = items
	}
	return &supportCounter{baskets: baskets}
}

func (c *supportCounter) total() int {
	return len(c.baskets)
}

// count returns the number of transactions containing every item of set.
func (c *supportCounter) count(set Itemset) int {
	n := 0
	for _, b := range c.baskets {
		if b.ContainsAll(set) {
			n++
		}
	}
	return n
}

// support returns count(set)/total, or 0 for an empty transaction set.
func (c *supportCounter) support(set Itemset) float64 {
	if len(c.baskets) == 0 {
		return 0
	}
	return float64(c.count(set)) / float64(len(c.baskets))
}

// itemCounts returns the occurrence count of every observed item.
func (c *supportCounter) itemCounts() map[Item]int {
	counts := make(map[Item]int)
	for _, b := range c.baskets {
		for _, item := range b {
			counts[item]++
		}
	}
	return counts
}

// countAll counts every candidate using at most workers goroutines.
// Each worker owns a contiguous block of result slots, so the returned
// counts line up with candidates regardless of scheduling.
func (c *supportCounter) countAll(ctx context.Context, candidates []Itemset, workers int) ([]int, error) {
	counts := make([]int, len(candidates))
	if len(candidates) == 0 {
		return counts, nil
	}

	if workers <= 1 || len(candidates) < 2 {
		for i, cand := range candidates {
			if i%cancelCheckInterval == 0 && ContextCancelled(ctx) {
				return nil, ctx.Err()
			}
			counts[i] = c.count(cand)
		}
		return counts, nil
	}

	if workers > len(candidates) {
		workers = len(candidates)
	}
	chunk := (len(candidates) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%cancelCheckInterval == 0 && ContextCancelled(gctx) {
					return gctx.Err()
				}
				counts[i] = c.count(candidates[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Support returns the fraction of txs containing every item of set.
// It returns 0 when txs is empty.
func Support(txs []Transaction, set Itemset) float64 {
	return newSupportCounter(txs).support(NewItemset(set...))
}
