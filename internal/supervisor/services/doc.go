// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package services wraps server components as suture.Service values.
//
// Each wrapper blocks in Serve until its context is canceled and returns
// ctx.Err() on a clean stop, so suture does not count the stop as a failure.
// Component interfaces are declared here so tests can substitute fakes.
package services
