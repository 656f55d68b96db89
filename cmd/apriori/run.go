// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/export"
	"github.com/tomtom215/breadbasket/internal/ingest"
	"github.com/tomtom215/breadbasket/internal/logging"
)

type runOptions struct {
	input         string
	output        string
	minSupport    float64
	minConfidence float64
	maxLength     int
	workers       int
	top           int
	perLevel      int
	jsonOut       bool
	noFallback    bool
	seed          uint64
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Mine a sales file and print the results",
		Long: `run loads sales records from --input, mines them and writes the result file
to --output. When the input file does not exist, synthetic sales are generated
instead unless --no-fallback is set.

Example:
  apriori run --input ventas_fit.json
  apriori run --min-support 0.1 --min-confidence 0.7 --top 5
  apriori run --json --output ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApriori(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "ventas_fit.json", "sales file (JSON array of records)")
	f.StringVarP(&opts.output, "output", "o", export.DateFileName, "result file; empty to skip writing")
	f.Float64Var(&opts.minSupport, "min-support", 0.05, "minimum support in (0, 1]")
	f.Float64Var(&opts.minConfidence, "min-confidence", 0.5, "minimum confidence in [0, 1]")
	f.IntVar(&opts.maxLength, "max-length", 0, "largest itemset size; 0 for no limit")
	f.IntVar(&opts.workers, "workers", 0, "support counting goroutines; 0 uses GOMAXPROCS")
	f.IntVar(&opts.top, "top", 15, "rules to print")
	f.IntVar(&opts.perLevel, "per-level", 10, "itemsets to print per size")
	f.BoolVar(&opts.jsonOut, "json", false, "print the result as JSON instead of a report")
	f.BoolVar(&opts.noFallback, "no-fallback", false, "fail when the input file is missing")
	f.Uint64Var(&opts.seed, "seed", ingest.DefaultGenerateOptions().Seed, "seed for synthetic sales")

	return cmd
}

func runApriori(cmd *cobra.Command, opts *runOptions) error {
	out := cmd.OutOrStdout()

	params := basket.DefaultParams()
	params.MinSupport = opts.minSupport
	params.MinConfidence = opts.minConfidence
	params.MaxLength = opts.maxLength
	params.Workers = opts.workers
	if err := params.Validate(); err != nil {
		return err
	}

	batch, source, err := loadSales(opts)
	if err != nil {
		return err
	}
	if len(batch.Transactions) == 0 {
		return fmt.Errorf("%s contains no sales", source)
	}

	stats := ingest.ComputeStats(batch.Transactions)
	logging.Info().
		Str("source", source).
		Str("shape", string(batch.Shape)).
		Int("records", batch.Records).
		Int("skipped", batch.Skipped).
		Int("transactions", stats.Transactions).
		Msg("Loaded sales")

	analysis, err := basket.Analyze(cmd.Context(), batch.Transactions, params)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		data, err := json.MarshalIndent(analysis.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printReport(out, reportInput{
			Source:   source,
			Stats:    stats,
			Params:   params,
			Analysis: analysis,
			Top:      opts.top,
			PerLevel: opts.perLevel,
		})
	}

	if opts.output != "" {
		if err := export.WriteFile(opts.output, analysis.Result); err != nil {
			return err
		}
		if !opts.jsonOut {
			fmt.Fprintf(out, "\nResultados exportados a '%s'\n", opts.output)
		}
	}
	return nil
}

// loadSales reads the input file, or generates sales when it is missing.
func loadSales(opts *runOptions) (*ingest.Batch, string, error) {
	batch, err := ingest.LoadFile(opts.input)
	if err == nil {
		return batch, opts.input, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || opts.noFallback {
		return nil, "", err
	}

	logging.Warn().Str("input", opts.input).Msg("Sales file not found, generating synthetic sales")
	gen := ingest.DefaultGenerateOptions()
	gen.Seed = opts.seed
	records, err := ingest.Generate(gen)
	if err != nil {
		return nil, "", err
	}
	batch, err = ingest.Normalize(records)
	if err != nil {
		return nil, "", err
	}
	return batch, "synthetic", nil
}
