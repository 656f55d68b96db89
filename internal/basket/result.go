// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"math"
	"strconv"
)

// Parameters records the inputs of a run alongside its output.
type Parameters struct {
	MinSupport        float64 `json:"min_support"`
	MinConfidence     float64 `json:"min_confidence"`
	TotalTransactions int     `json:"total_transacciones"`
}

// ExportedRule is a rule with its scores rounded for presentation.
type ExportedRule struct {
	Antecedent Itemset `json:"antecedente"`
	Consequent Itemset `json:"consecuente"`
	Support    float64 `json:"soporte"`
	Confidence float64 `json:"confianza"`
	Lift       float64 `json:"lift"`
}

// Result is the exported form of one analysis run. It is what sinks write
// to disk and what the API returns.
type Result struct {
	Parameters Parameters `json:"parametros"`

	// FrequentItemsets maps the itemset size, as a decimal string, to the
	// frequent itemsets of that size.
	FrequentItemsets map[string][]Itemset `json:"itemsets_frecuentes"`

	Rules []ExportedRule `json:"reglas_asociacion"`
}

// Assemble shapes a mined table and its rules into a Result. Rule scores are
// rounded to four decimals; the parameters are kept as given. An empty table
// produces an empty map and an empty rule list, never nil.
//
//nolint:gocritic // Params is small and copied by value across the package
func Assemble(params Params, table *FrequentTable, rules []Rule) *Result {
	res := &Result{
		Parameters: Parameters{
			MinSupport:    params.MinSupport,
			MinConfidence: params.MinConfidence,
		},
		FrequentItemsets: make(map[string][]Itemset),
		Rules:            make([]ExportedRule, 0, len(rules)),
	}

	if table != nil {
		res.Parameters.TotalTransactions = table.TotalTransactions()
		for k := 1; k <= table.Levels(); k++ {
			level := table.Level(k)
			sets := make([]Itemset, len(level))
			for i, fi := range level {
				sets[i] = fi.Items
			}
			res.FrequentItemsets[strconv.Itoa(k)] = sets
		}
	}

	for _, r := range rules {
		res.Rules = append(res.Rules, ExportedRule{
			Antecedent: r.Antecedent,
			Consequent: r.Consequent,
			Support:    Round4(r.Support),
			Confidence: Round4(r.Confidence),
			Lift:       Round4(r.Lift),
		})
	}
	return res
}

// ItemsetCount returns the number of frequent itemsets across all levels.
func (r *Result) ItemsetCount() int {
	n := 0
	for _, sets := range r.FrequentItemsets {
		n += len(sets)
	}
	return n
}

// Round4 rounds v to four decimal places, half away from zero.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
