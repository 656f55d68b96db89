// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

/*
Package middleware provides HTTP instrumentation middleware.

PrometheusMetrics records request counts, latencies and in-flight requests.
Requests are labelled with the chi route pattern (for example
/api/v1/apriori/{fecha}) rather than the raw path, so one series covers every
date.

	r := chi.NewRouter()
	r.Use(middleware.Prometheus)
*/
package middleware
