// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

/*
Package api exposes the mining service over HTTP using the Chi router.

Endpoints:

	GET  /api/v1/health                   database connectivity and uptime
	GET  /api/v1/apriori/todos            mine every stored date
	GET  /api/v1/apriori/{fecha}          mine one date
	POST /api/v1/ventas/{fecha}           store sales for a date and mine it
	POST /api/v1/apriori/analyze          mine raw records without storing them
	GET  /metrics                         Prometheus metrics

The mining endpoints accept min_support and min_confidence query parameters;
missing values fall back to the configured defaults. Support must lie in
[0.01, 1] and confidence in [0, 1].

Every response uses the models.APIResponse envelope. Errors map to status
codes as follows:

  - invalid parameters or malformed JSON: 400 VALIDATION_ERROR
  - records with no recognizable sale and product fields: 422 UNRECOGNIZED_STRUCTURE
  - a date without stored sales: 404 NOT_FOUND
  - anything else: 500 INTERNAL_ERROR

The global middleware stack adds a request ID to the logging context,
resolves the client IP, recovers panics and applies CORS. API routes are also
rate limited per IP, gzip compressed and instrumented with Prometheus.
*/
package api
