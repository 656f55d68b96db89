// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

// FrequentItemset is an itemset whose support cleared the threshold.
type FrequentItemset struct {
	Items   Itemset `json:"items"`
	Count   int     `json:"count"`
	Support float64 `json:"support"`
}

// LevelStats summarizes the work done at one mining level.
type LevelStats struct {
	Level      int `json:"level"`
	Candidates int `json:"candidates"`
	Pruned     int `json:"pruned"`
	Frequent   int `json:"frequent"`
}

// FrequentTable holds the frequent itemsets of one mining run grouped by
// size. Level k holds itemsets of exactly k items in canonical order;
// levels are contiguous from 1 and none is empty.
type FrequentTable struct {
	levels  [][]FrequentItemset
	counts  map[string]int
	stats   []LevelStats
	counter *supportCounter
	minSup  float64
}

func newFrequentTable(counter *supportCounter, minSupport float64) *FrequentTable {
	return &FrequentTable{
		counts:  make(map[string]int),
		counter: counter,
		minSup:  minSupport,
	}
}

// addLevel appends the next level. An empty level is recorded in the stats
// only.
func (t *FrequentTable) addLevel(sets []FrequentItemset, stats LevelStats) {
	stats.Frequent = len(sets)
	t.stats = append(t.stats, stats)
	if len(sets) == 0 {
		return
	}
	for _, fi := range sets {
		t.counts[fi.Items.Key()] = fi.Count
	}
	t.levels = append(t.levels, sets)
}

// Levels returns the number of non-empty levels.
func (t *FrequentTable) Levels() int {
	return len(t.levels)
}

// Level returns the frequent itemsets of size k, or nil when there are none.
func (t *FrequentTable) Level(k int) []FrequentItemset {
	if k < 1 || k > len(t.levels) {
		return nil
	}
	return t.levels[k-1]
}

// Len returns the total number of frequent itemsets.
func (t *FrequentTable) Len() int {
	return len(t.counts)
}

// Empty reports whether no itemset was frequent.
func (t *FrequentTable) Empty() bool {
	return len(t.levels) == 0
}

// TotalTransactions returns the size of the transaction set the table was
// mined from.
func (t *FrequentTable) TotalTransactions() int {
	if t.counter == nil {
		return 0
	}
	return t.counter.total()
}

// MinSupport returns the threshold the table was mined with.
func (t *FrequentTable) MinSupport() float64 {
	return t.minSup
}

// Stats returns per-level candidate and pruning counts, including the final
// level that produced no frequent itemsets.
func (t *FrequentTable) Stats() []LevelStats {
	out := make([]LevelStats, len(t.stats))
	copy(out, t.stats)
	return out
}

// Contains reports whether set is frequent.
func (t *FrequentTable) Contains(set Itemset) bool {
	_, ok := t.counts[set.Key()]
	return ok
}

// Count returns the number of transactions containing set. Frequent sets are
// answered from the table; anything else is counted against the same
// transactions the table was built from.
func (t *FrequentTable) Count(set Itemset) int {
	if n, ok := t.counts[set.Key()]; ok {
		return n
	}
	if t.counter == nil {
		return 0
	}
	return t.counter.count(set)
}

// Support returns the support of set over the table's transactions.
func (t *FrequentTable) Support(set Itemset) float64 {
	total := t.TotalTransactions()
	if total == 0 {
		return 0
	}
	return float64(t.Count(set)) / float64(total)
}

// All returns every frequent itemset, level by level.
func (t *FrequentTable) All() []FrequentItemset {
	out := make([]FrequentItemset, 0, len(t.counts))
	for _, level := range t.levels {
		out = append(out, level...)
	}
	return out
}
