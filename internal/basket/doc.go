// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package basket implements frequent-itemset mining and association-rule
// derivation over grouped sales transactions.
//
// # Pipeline
//
// A mining run is a pure function of a transaction set and two thresholds:
//
//	transactions -> Mine -> FrequentTable -> GenerateRules -> []Rule -> Assemble -> Result
//
// Mine performs level-wise (Apriori) enumeration: frequent 1-itemsets are
// counted directly, and every level k >= 2 is built by joining frequent
// (k-1)-itemsets that share their first k-2 items. Candidates whose support
// falls below MinSupport are discarded and the search stops at the first empty
// level.
//
// GenerateRules splits every frequent itemset of size >= 2 into all
// antecedent/consequent pairs and keeps the rules whose confidence meets the
// threshold. Rules are ordered by confidence, then lift, then support, then the
// canonical order of antecedent and consequent, so output is reproducible.
//
// Assemble shapes the table and rules into the export contract consumed by
// the HTTP layer, the CLI and the file sink.
//
// # Usage
//
//	txs := []basket.Transaction{
//	    basket.NewTransaction(basket.IntItem(1), basket.IntItem(10), basket.IntItem(11)),
//	    basket.NewTransaction(basket.IntItem(2), basket.IntItem(10)),
//	}
//
//	analysis, err := basket.Analyze(ctx, txs, basket.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(analysis.Rules))
//
// # Concurrency
//
// Nothing in this package holds state between calls. Within a run, support
// counting for the candidates of one level is spread across a bounded number
// of goroutines; each goroutine writes only its own result slots, and the
// merge happens by candidate index, so the worker count never changes output.
package basket
