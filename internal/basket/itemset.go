// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"sort"
	"strings"
)

// Itemset is a set of items stored in canonical form: sorted ascending by
// Item.Compare with no duplicates. Equal sets therefore have equal slices
// regardless of the order in which their items were discovered.
type Itemset []Item

// NewItemset returns the canonical itemset holding the given items.
// The input slice is not modified.
func NewItemset(items ...Item) Itemset {
	set := make(Itemset, len(items))
	copy(set, items)
	return set.canonicalize()
}

// canonicalize sorts and deduplicates the set in place.
func (s Itemset) canonicalize() Itemset {
	if len(s) < 2 {
		return s
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i].Less(s[j])
	})

	out := s[:1]
	for _, item := range s[1:] {
		if item.Compare(out[len(out)-1]) != 0 {
			out = append(out, item)
		}
	}
	return out
}

// isCanonical reports whether the set is strictly ascending.
func (s Itemset) isCanonical() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1].Compare(s[i]) >= 0 {
			return false
		}
	}
	return true
}

// Key returns a string that uniquely identifies the set. Two canonical
// itemsets have the same key if and only if they hold the same items.
func (s Itemset) Key() string {
	b := make([]byte, 0, len(s)*8)
	for _, item := range s {
		b = item.appendKey(b)
	}
	return string(b)
}

// Compare orders itemsets lexicographically by item; a proper prefix sorts
// before the longer set.
func (s Itemset) Compare(o Itemset) int {
	n := len(s)
	if len(o) < n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		if c := s[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s) < len(o):
		return -1
	case len(s) > len(o):
		return 1
	default:
		return 0
	}
}

// Equal reports whether both sets hold the same items.
func (s Itemset) Equal(o Itemset) bool {
	return len(s) == len(o) && s.Compare(o) == 0
}

// ContainsAll reports whether every item of sub is also in s.
// Both sets must be canonical.
func (s Itemset) ContainsAll(sub Itemset) bool {
	if len(sub) > len(s) {
		return false
	}
	i := 0
	for _, want := range sub {
		for i < len(s) && s[i].Less(want) {
			i++
		}
		if i == len(s) || s[i].Compare(want) != 0 {
			return false
		}
		i++
	}
	return true
}

// Without returns the canonical set of items in s that are not in other.
func (s Itemset) Without(other Itemset) Itemset {
	out := make(Itemset, 0, len(s))
	j := 0
	for _, item := range s {
		for j < len(other) && other[j].Less(item) {
			j++
		}
		if j < len(other) && other[j].Compare(item) == 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

// String formats the set as "{a, b, c}".
func (s Itemset) String() string {
	parts := make([]string, len(s))
	for i, item := range s {
		parts[i] = item.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Transaction is one group of items observed together, such as the products
// of a single sale.
type Transaction struct {
	// ID identifies the transaction (the sale id).
	ID Item `json:"id"`

	// Items is the canonical set of items in the transaction.
	Items Itemset `json:"items"`
}

// NewTransaction builds a transaction, collapsing repeated items into a
// single membership.
func NewTransaction(id Item, items ...Item) Transaction {
	return Transaction{
		ID:    id,
		Items: NewItemset(items...),
	}
}

// SortTransactions orders transactions by ID so that grouped input yields
// the same sequence on every run.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].ID.Less(txs[j].ID)
	})
}
