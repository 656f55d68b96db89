// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

/*
Package models defines the HTTP response structures shared by the API and its
clients.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-03-15T12:00:00Z", "request_id": "..."}
	}

Failed requests set status to "error" and fill the error object with a
machine-readable code, a message and optional details.
*/
package models
