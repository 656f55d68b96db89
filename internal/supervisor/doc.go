// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

The tree has three layers:

	breadbasket (root)
	├── data-layer     DuckDB checkpoints
	├── mining-layer   scheduled mining over every stored date
	└── api-layer      HTTP server

A service that returns an error or panics is restarted by its layer. Repeated
failures put the layer into backoff without stopping its siblings, so a
failing scheduled run never takes the HTTP server down.

Supervisor events are logged through sutureslog into the zerolog-backed slog
handler from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandler()), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, ":8000", 10*time.Second, logging.Logger()))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
