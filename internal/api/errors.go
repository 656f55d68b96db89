// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/breadbasket/internal/analysis"
	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/ingest"
)

// Error codes sent in the envelope.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeUnrecognizedStructure = "UNRECOGNIZED_STRUCTURE"
	CodeNotFound              = "NOT_FOUND"
	CodeRateLimited           = "RATE_LIMIT_EXCEEDED"
	CodeTimeout               = "TIMEOUT"
	CodeInternal              = "INTERNAL_ERROR"
)

// classifyError maps a service error to a status code, an error code and a
// message safe to show to clients.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, basket.ErrInvalidParameter), errors.Is(err, ingest.ErrMalformedInput):
		return http.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, basket.ErrUnrecognizedStructure):
		return http.StatusUnprocessableEntity, CodeUnrecognizedStructure, err.Error()
	case errors.Is(err, analysis.ErrNoData):
		return http.StatusNotFound, CodeNotFound, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout, "Request timed out"
	default:
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}
}

// respondServiceError classifies err and writes the matching envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)
	respondError(w, r, status, code, message, err)
}
