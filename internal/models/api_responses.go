// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "no hay datos para la fecha 2024-03-15"
//	  },
//	  "metadata": {"timestamp": "2026-03-15T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata carries per-response bookkeeping. QueryTimeMS is the mining or
// query time and is omitted for cached responses.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError describes a failed request.
//
// Codes in use:
//   - VALIDATION_ERROR: invalid thresholds, date or request body
//   - UNRECOGNIZED_STRUCTURE: records match no known sales layout
//   - NOT_FOUND: no sales stored for the date
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: storage or mining failure
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	CachedResults     int     `json:"cached_results"`
	Uptime            float64 `json:"uptime_seconds"`
}
