// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/breadbasket/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "apriori",
		Short: "Mine frequent itemsets and association rules from sales",
		Long: `apriori runs the Apriori algorithm over a JSON file of sales records and
prints the frequent itemsets and association rules it finds.

Records may use any layout the server accepts: nested
{"id_venta": 1, "producto": {"id_producto": 2}}, flat
{"venta_id": 1, "producto_id": 2}, or any keys containing a sale and a
product keyword.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !logging.ValidLevel(logLevel) {
				return fmt.Errorf("invalid --log-level %q", logLevel)
			}
			cfg := logging.DefaultConfig()
			cfg.Level = logLevel
			cfg.Format = "console"
			cfg.Output = cmd.ErrOrStderr()
			logging.Init(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "apriori %s\n", version)
		},
	}
}
