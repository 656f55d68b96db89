// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/breadbasket/internal/analysis"
	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/cache"
	"github.com/tomtom215/breadbasket/internal/ingest"
	"github.com/tomtom215/breadbasket/internal/models"
	"github.com/tomtom215/breadbasket/internal/validation"
)

// maxBodyBytes caps upload and analyze request bodies.
const maxBodyBytes = 10 << 20

// Pinger reports database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the HTTP endpoints.
type Handler struct {
	svc       *analysis.Service
	db        Pinger
	results   *cache.ResultCache
	version   string
	timeout   time.Duration
	startTime time.Time
}

// HandlerOptions carries the optional handler dependencies.
type HandlerOptions struct {
	// DB is pinged by the health endpoint; nil reports it as disconnected.
	DB Pinger
	// Results is reported by the health endpoint.
	Results *cache.ResultCache
	Version string
	// Timeout bounds each mining request; zero disables it.
	Timeout time.Duration
}

// NewHandler creates a handler around svc.
func NewHandler(svc *analysis.Service, opts HandlerOptions) *Handler {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		svc:       svc,
		db:        opts.DB,
		results:   opts.Results,
		version:   version,
		timeout:   opts.Timeout,
		startTime: time.Now(),
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// Health reports database connectivity, cached result count and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbConnected := h.db != nil && h.db.Ping(ctx) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	respondSuccess(w, r, http.StatusOK, models.HealthStatus{
		Status:            status,
		Version:           h.version,
		DatabaseConnected: dbConnected,
		CachedResults:     h.results.Len(),
		Uptime:            time.Since(h.startTime).Seconds(),
	}, 0, false)
}

// AprioriDate mines the stored sales of one date.
func (h *Handler) AprioriDate(w http.ResponseWriter, r *http.Request) {
	fecha, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	params, ok := h.miningParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.svc.AnalyzeDate(ctx, fecha, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, report, report.Duration, report.Cached)
}

// AprioriAll mines every stored date with the default thresholds.
func (h *Handler) AprioriAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.svc.AnalyzeAll(ctx)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, report, report.Duration, false)
}

// RecordSales stores the posted sales under a date and mines the date.
// The body is a JSON array of records in any supported layout with integer
// sale and product ids.
func (h *Handler) RecordSales(w http.ResponseWriter, r *http.Request) {
	fecha, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	params, ok := h.miningParams(w, r)
	if !ok {
		return
	}

	records, err := ingest.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	sales, err := analysis.SalesFromRecords(records)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	batch := validation.SalesBatchRequest{Fecha: fecha, Lines: make([]validation.SaleLineRequest, len(sales))}
	for i, s := range sales {
		batch.Lines[i] = validation.SaleLineRequest{IDVenta: s.IDVenta, IDProducto: s.IDProducto}
	}
	if apiErr := validateRequest(&batch); apiErr != nil {
		respondAPIError(w, r, apiErr)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.svc.RecordSalesAndAnalyze(ctx, fecha, sales, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusCreated, report, report.Duration, false)
}

// AnalyzeRecords mines posted records without storing them.
func (h *Handler) AnalyzeRecords(w http.ResponseWriter, r *http.Request) {
	params, ok := h.miningParams(w, r)
	if !ok {
		return
	}

	records, err := ingest.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.svc.AnalyzeRecords(ctx, records, params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, report, report.Duration, false)
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	req := validation.DateRequest{Fecha: chi.URLParam(r, "fecha")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, apiErr)
		return "", false
	}
	return req.Fecha, true
}

// miningParams reads min_support and min_confidence from the query string.
// Missing values fall back to the service defaults, which are not checked
// against the request bounds.
func (h *Handler) miningParams(w http.ResponseWriter, r *http.Request) (basket.Params, bool) {
	defaults := h.svc.Defaults()
	q := r.URL.Query()
	if q.Get("min_support") == "" && q.Get("min_confidence") == "" {
		return defaults, true
	}

	req := validation.MiningParamsRequest{
		MinSupport:    defaults.MinSupport,
		MinConfidence: defaults.MinConfidence,
	}
	fields := []struct {
		key string
		dst *float64
	}{
		{"min_support", &req.MinSupport},
		{"min_confidence", &req.MinConfidence},
	}
	for _, f := range fields {
		key, raw := f.key, q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondAPIError(w, r, &models.APIError{
				Code:    CodeValidation,
				Message: key + " must be a number",
				Details: map[string]any{"field": key, "value": sanitizeLogValue(raw)},
			})
			return basket.Params{}, false
		}
		*f.dst = v
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, apiErr)
		return basket.Params{}, false
	}
	return h.svc.WithThresholds(req.MinSupport, req.MinConfidence), true
}
