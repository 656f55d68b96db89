// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"fmt"
	"sort"
)

// Rule is a directional association antecedent => consequent derived from
// one frequent itemset. Antecedent and consequent are disjoint and together
// form the source itemset.
type Rule struct {
	Antecedent Itemset `json:"antecedent"`
	Consequent Itemset `json:"consequent"`

	// Support is the support of the full itemset.
	Support float64 `json:"support"`

	// Confidence is support(itemset) / support(antecedent).
	Confidence float64 `json:"confidence"`

	// Lift is confidence / support(consequent), or 0 when the consequent
	// never occurs.
	Lift float64 `json:"lift"`
}

// Itemset returns the union of antecedent and consequent.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (r Rule) Itemset() Itemset {
	set := make(Itemset, 0, len(r.Antecedent)+len(r.Consequent))
	set = append(set, r.Antecedent...)
	set = append(set, r.Consequent...)
	return set.canonicalize()
}

// String formats the rule as "{a} => {b}".
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (r Rule) String() string {
	return fmt.Sprintf("%s => %s", r.Antecedent, r.Consequent)
}

// GenerateRules derives every rule from itemsets of size two or more in
// table whose confidence is at least minConfidence.
//
// Every non-empty proper subset of an itemset is tried as antecedent.
// Splits whose antecedent has zero support are skipped.
//
// Rules are ordered by confidence, lift and support (all descending), then
// by antecedent and consequent in canonical order.
func GenerateRules(table *FrequentTable, minConfidence float64) ([]Rule, error) {
	if err := ValidateMinConfidence(minConfidence); err != nil {
		return nil, err
	}
	rules := []Rule{}
	if table == nil {
		return rules, nil
	}

	total := table.TotalTransactions()
	for k := 2; k <= table.Levels(); k++ {
		for _, fi := range table.Level(k) {
			rules = appendRules(rules, table, fi, total, minConfidence)
		}
	}

	SortRules(rules)
	return rules, nil
}

// appendRules emits the qualifying splits of one frequent itemset.
//
//nolint:gocritic // FrequentItemset is passed by value from range iteration
func appendRules(rules []Rule, table *FrequentTable, fi FrequentItemset, total int, minConfidence float64) []Rule {
	k := len(fi.Items)
	for size := 1; size < k; size++ {
		forEachCombination(k, size, func(idx []int) {
			antecedent := make(Itemset, len(idx))
			for i, j := range idx {
				antecedent[i] = fi.Items[j]
			}

			antCount := table.Count(antecedent)
			if antCount == 0 {
				return
			}
			confidence := float64(fi.Count) / float64(antCount)
			if confidence < minConfidence {
				return
			}

			consequent := fi.Items.Without(antecedent)
			var lift float64
			if conCount := table.Count(consequent); conCount > 0 {
				lift = confidence / (float64(conCount) / float64(total))
			}

			rules = append(rules, Rule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    fi.Support,
				Confidence: confidence,
				Lift:       lift,
			})
		})
	}
	return rules
}

// forEachCombination calls fn with every size-r subset of 0..n-1 as
// ascending indices, in lexicographic order. fn must not retain idx.
func forEachCombination(n, r int, fn func(idx []int)) {
	if r <= 0 || r > n {
		return
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)

		i := r - 1
		for i >= 0 && idx[i] == n-r+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// SortRules orders rules by confidence, lift and support descending, then
// antecedent and consequent ascending.
func SortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := &rules[i], &rules[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Lift != b.Lift {
			return a.Lift > b.Lift
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if c := a.Antecedent.Compare(b.Antecedent); c != 0 {
			return c < 0
		}
		return a.Consequent.Compare(b.Consequent) < 0
	})
}
