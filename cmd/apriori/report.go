// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/ingest"
)

type reportInput struct {
	Source   string
	Stats    ingest.Stats
	Params   basket.Params
	Analysis *basket.Analysis
	Top      int
	PerLevel int
}

// printReport writes the human-readable mining report.
func printReport(out io.Writer, in reportInput) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "RESULTADOS DEL ANÁLISIS APRIORI")
	fmt.Fprintln(out, rule)

	fmt.Fprintf(out, "\nDatos: %s\n", in.Source)
	fmt.Fprintf(out, "- Transacciones: %d\n", in.Stats.Transactions)
	fmt.Fprintf(out, "- Productos únicos: %d\n", in.Stats.UniqueItems)
	fmt.Fprintf(out, "- Promedio de productos por transacción: %.2f\n", in.Stats.MeanBasketSize)

	fmt.Fprintln(out, "\nParámetros utilizados:")
	fmt.Fprintf(out, "- Soporte mínimo: %.1f%%\n", in.Params.MinSupport*100)
	fmt.Fprintf(out, "- Confianza mínima: %.1f%%\n", in.Params.MinConfidence*100)

	table := in.Analysis.Table
	fmt.Fprintln(out, "\nITEMSETS FRECUENTES:")
	if table.Empty() {
		fmt.Fprintln(out, "  (ninguno)")
	}
	for k := 1; k <= table.Levels(); k++ {
		level := table.Level(k)
		fmt.Fprintf(out, "\nTamaño %d: %d itemsets\n", k, len(level))

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for i, fi := range level {
			if in.PerLevel > 0 && i == in.PerLevel {
				break
			}
			fmt.Fprintf(tw, "  %s\t%.3f\t(%.1f%%)\n", fi.Items, fi.Support, fi.Support*100)
		}
		_ = tw.Flush()
		if in.PerLevel > 0 && len(level) > in.PerLevel {
			fmt.Fprintf(out, "  ... y %d más\n", len(level)-in.PerLevel)
		}
	}

	rules := in.Analysis.Rules
	fmt.Fprintln(out, "\nREGLAS DE ASOCIACIÓN:")
	fmt.Fprintf(out, "Total de reglas encontradas: %d\n", len(rules))
	if len(rules) == 0 {
		return
	}

	n := len(rules)
	if in.Top > 0 && in.Top < n {
		n = in.Top
	}
	fmt.Fprintf(out, "\nTop %d reglas por confianza:\n\n", n)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tREGLA\tSOPORTE\tCONFIANZA\tLIFT")
	for i, r := range rules[:n] {
		fmt.Fprintf(tw, "%d\t%s => %s\t%.3f\t%.3f\t%.3f\n", i+1, r.Antecedent, r.Consequent, r.Support, r.Confidence, r.Lift)
	}
	_ = tw.Flush()
}
