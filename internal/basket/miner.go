// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"context"
	"sort"
)

// Mine finds every itemset whose support in txs is at least
// opts.MinSupport, working level by level.
//
// Level k candidates are joined from pairs of frequent (k-1)-itemsets that
// share their first k-2 items. Mining stops at the first level with no
// frequent itemset or at opts.MaxLength.
//
// An empty transaction set yields an empty table and no error. The caller's
// transactions are read but never modified.
func Mine(ctx context.Context, txs []Transaction, opts MineOptions) (*FrequentTable, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	counter := newSupportCounter(txs)
	table := newFrequentTable(counter, opts.MinSupport)
	total := counter.total()
	if total == 0 {
		return table, nil
	}

	level, observed := frequentItems(counter, opts.MinSupport)
	table.addLevel(level, LevelStats{Level: 1, Candidates: observed})

	workers := opts.workers()
	for k := 2; len(level) > 0; k++ {
		if opts.MaxLength > 0 && k > opts.MaxLength {
			break
		}
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		candidates := generateCandidates(level)
		stats := LevelStats{Level: k, Candidates: len(candidates)}
		if opts.PruneSubsets {
			var pruned int
			candidates, pruned = pruneCandidates(candidates, table)
			stats.Pruned = pruned
		}

		counts, err := counter.countAll(ctx, candidates, workers)
		if err != nil {
			return nil, err
		}

		next := make([]FrequentItemset, 0, len(candidates))
		for i, cand := range candidates {
			if sup := float64(counts[i]) / float64(total); sup >= opts.MinSupport {
				next = append(next, FrequentItemset{Items: cand, Count: counts[i], Support: sup})
			}
		}
		table.addLevel(next, stats)
		level = next
	}

	return table, nil
}

// frequentItems returns the frequent 1-itemsets in canonical order and the
// number of distinct items observed.
func frequentItems(counter *supportCounter, minSupport float64) ([]FrequentItemset, int) {
	total := float64(counter.total())
	counts := counter.itemCounts()

	out := make([]FrequentItemset, 0, len(counts))
	for item, n := range counts {
		if sup := float64(n) / total; sup >= minSupport {
			out = append(out, FrequentItemset{Items: Itemset{item}, Count: n, Support: sup})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Items[0].Less(out[j].Items[0])
	})
	return out, len(counts)
}

// generateCandidates joins frequent (k-1)-itemsets that agree on their first
// k-2 items. prev must be in canonical order; itemsets sharing a prefix are
// then contiguous and the output is also in canonical order.
func generateCandidates(prev []FrequentItemset) []Itemset {
	var out []Itemset
	for i := 0; i < len(prev); i++ {
		a := prev[i].Items
		for j := i + 1; j < len(prev); j++ {
			b := prev[j].Items
			if !samePrefix(a, b) {
				break
			}
			cand := make(Itemset, len(a)+1)
			copy(cand, a)
			cand[len(a)] = b[len(b)-1]
			out = append(out, cand)
		}
	}
	return out
}

// samePrefix reports whether a and b differ only in their last item.
func samePrefix(a, b Itemset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a)-1; i++ {
		if a[i].Compare(b[i]) != 0 {
			return false
		}
	}
	return true
}

// pruneCandidates drops candidates with an infrequent (k-1)-subset. The two
// subsets formed by dropping either of the last two items are the joined
// parents and are skipped.
func pruneCandidates(candidates []Itemset, table *FrequentTable) ([]Itemset, int) {
	kept := candidates[:0]
	pruned := 0
	for _, cand := range candidates {
		if allSubsetsFrequent(cand, table) {
			kept = append(kept, cand)
		} else {
			pruned++
		}
	}
	return kept, pruned
}

func allSubsetsFrequent(cand Itemset, table *FrequentTable) bool {
	sub := make(Itemset, len(cand)-1)
	for skip := 0; skip < len(cand)-2; skip++ {
		copy(sub, cand[:skip])
		copy(sub[skip:], cand[skip+1:])
		if !table.Contains(sub) {
			return false
		}
	}
	return true
}
