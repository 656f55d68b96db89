// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package analysis runs mining against stored sales.
//
// A Service ties together the sales store, the mining engine in package
// basket, the in-memory result cache and the JSON export sink:
//
//	store -> basket.Analyze -> cache -> export
//
// Concurrent requests for the same date and thresholds share one mining
// run. Recording new sales for a date drops that date's cached results.
package analysis
