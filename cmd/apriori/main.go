// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package main provides the apriori command line tool.
//
// It mines a sales file without the server or a database:
//
//	apriori run --input ventas_fit.json --min-support 0.05 --min-confidence 0.5
//	apriori generate --sales 500 --output ventas_fit.json
//
// run falls back to synthetic sales when the input file does not exist.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
