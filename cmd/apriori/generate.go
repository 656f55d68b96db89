// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/breadbasket/internal/export"
	"github.com/tomtom215/breadbasket/internal/ingest"
)

func newGenerateCmd() *cobra.Command {
	opts := ingest.DefaultGenerateOptions()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic sales records",
		Long: `generate writes a JSON array of synthetic sales in the nested layout
{"id_venta": 1, "producto": {"id_producto": 7}}. The same seed always
produces the same file.

Example:
  apriori generate --sales 1000 --products 40 --output ventas_fit.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := ingest.Generate(opts)
			if err != nil {
				return err
			}
			if err := export.WriteFile(output, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d registros de %d ventas escritos en '%s'\n", len(records), opts.Sales, output)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Sales, "sales", opts.Sales, "number of sales")
	f.IntVar(&opts.Products, "products", opts.Products, "size of the product catalog")
	f.IntVar(&opts.MinPerSale, "min-per-sale", opts.MinPerSale, "fewest products in a sale")
	f.IntVar(&opts.MaxPerSale, "max-per-sale", opts.MaxPerSale, "most products in a sale")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	f.StringVarP(&output, "output", "o", "ventas_fit.json", "output file")

	return cmd
}
