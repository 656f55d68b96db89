// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/cache"
	"github.com/tomtom215/breadbasket/internal/database"
	"github.com/tomtom215/breadbasket/internal/ingest"
	"github.com/tomtom215/breadbasket/internal/logging"
	"github.com/tomtom215/breadbasket/internal/metrics"
)

// DefaultRunTimeout bounds a shared mining run once it no longer follows
// the context of the caller that started it.
const DefaultRunTimeout = 10 * time.Minute

// Service runs mining over stored and submitted sales. It is safe for
// concurrent use.
type Service struct {
	store      SalesStore
	cache      *cache.ResultCache
	sink       Sink
	defaults   basket.Params
	logger     zerolog.Logger
	runTimeout time.Duration

	flight singleflight.Group

	// mu guards generations. A date's generation advances on every insert,
	// so runs that loaded the store earlier never land in the cache.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewService creates a service. results and sink may be nil to disable
// caching and export.
//
//nolint:gocritic // zerolog.Logger and Params are passed by value like elsewhere
func NewService(store SalesStore, results *cache.ResultCache, sink Sink, defaults basket.Params, logger zerolog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("analysis: sales store is required")
	}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default parameters: %w", err)
	}
	return &Service{
		store:    store,
		cache:    results,
		sink:     sink,
		defaults:    defaults,
		logger:      logger.With().Str("component", "analysis").Logger(),
		runTimeout:  DefaultRunTimeout,
		generations: make(map[string]uint64),
	}, nil
}

// Defaults returns the thresholds used when a request gives none.
func (s *Service) Defaults() basket.Params {
	return s.defaults
}

// WithThresholds returns the default parameters with both thresholds
// replaced.
func (s *Service) WithThresholds(minSupport, minConfidence float64) basket.Params {
	p := s.defaults
	p.MinSupport = minSupport
	p.MinConfidence = minConfidence
	return p
}

// AnalyzeDate mines the stored sales of fecha. Results are served from the
// cache when the same date and thresholds were mined before. Identical
// concurrent calls share one run; a caller that gives up does not cancel it
// for the others.
//
//nolint:gocritic // Params is small
func (s *Service) AnalyzeDate(ctx context.Context, fecha string, params basket.Params) (*Report, error) {
	if err := params.Validate(); err != nil {
		metrics.RecordMiningFailure(SourceDate, "invalid")
		return nil, err
	}

	if res, ok := s.cache.Get(fecha, params.MinSupport, params.MinConfidence); ok {
		return &Report{
			Message:      fmt.Sprintf("%d reglas generadas", len(res.Rules)),
			Fecha:        fecha,
			Transactions: res.Parameters.TotalTransactions,
			ItemsetCount: res.ItemsetCount(),
			RuleCount:    len(res.Rules),
			Result:       res,
			Cached:       true,
		}, nil
	}

	gen := s.generation(fecha)
	key := fmt.Sprintf("%s|%d", cache.ResultKey(fecha, params.MinSupport, params.MinConfidence), gen)
	ch := s.flight.DoChan(key, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.runTimeout)
		defer cancel()
		return s.mineDate(runCtx, fecha, gen, params)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		report := res.Val.(*Report)
		if res.Shared {
			cp := *report
			report = &cp
		}
		return report, nil
	}
}

func (s *Service) generation(fecha string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[fecha]
}

// advance moves fecha to a new generation and drops its cached results.
func (s *Service) advance(fecha string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[fecha]++
	s.cache.InvalidateDate(fecha)
}

// current reports whether gen is still the generation of fecha and, if so,
// caches res.
//
//nolint:gocritic // Params is small
func (s *Service) current(fecha string, gen uint64, params basket.Params, res *basket.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[fecha] != gen {
		return false
	}
	s.cache.Put(fecha, params.MinSupport, params.MinConfidence, res)
	return true
}

//nolint:gocritic // Params is small
func (s *Service) mineDate(ctx context.Context, fecha string, gen uint64, params basket.Params) (*Report, error) {
	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	log := s.logger.With().Str("run_id", runID).Str("fecha", fecha).Logger()

	txs, err := s.store.TransactionsForDate(ctx, fecha)
	if err != nil {
		metrics.RecordMiningFailure(SourceDate, "error")
		return nil, fmt.Errorf("load sales for %s: %w", fecha, err)
	}
	if len(txs) == 0 {
		metrics.RecordMiningFailure(SourceDate, "no_data")
		return nil, fmt.Errorf("%w: no hay datos para la fecha %s", ErrNoData, fecha)
	}

	report, err := s.run(ctx, SourceDate, txs, params)
	if err != nil {
		return nil, err
	}
	report.Fecha = fecha
	if !s.current(fecha, gen, params, report.Result) {
		// Sales arrived while mining; a later run owns the cache and file.
		log.Debug().Msg("Skipping cache and export for superseded run")
		return report, nil
	}

	path, err := s.exportDate(fecha, report.Result)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Failed to export result")
	case path != "":
		report.ExportPath = path
		report.Message = fmt.Sprintf("%d reglas generadas y guardadas en %s", report.RuleCount, path)
	}

	log.Info().
		Int("transactions", report.Transactions).
		Int("itemsets", report.ItemsetCount).
		Int("rules", report.RuleCount).
		Dur("duration", report.Duration).
		Msg("Mined sales date")

	return report, nil
}

func (s *Service) exportDate(fecha string, res *basket.Result) (string, error) {
	if s.sink == nil {
		return "", nil
	}
	return s.sink.WriteDate(fecha, res)
}

func (s *Service) exportAll(results map[string]*basket.Result) (string, error) {
	if s.sink == nil {
		return "", nil
	}
	return s.sink.WriteAll(results)
}

// run mines txs and records metrics. It does not touch the cache or sink.
//
//nolint:gocritic // Params is small
func (s *Service) run(ctx context.Context, source string, txs []basket.Transaction, params basket.Params) (*Report, error) {
	analysis, err := basket.Analyze(ctx, txs, params)
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, basket.ErrInvalidParameter):
			outcome = "invalid"
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			outcome = "cancelled"
		}
		metrics.RecordMiningFailure(source, outcome)
		return nil, err
	}

	stats := analysis.Table.Stats()
	levels := make([]metrics.LevelStat, len(stats))
	for i, st := range stats {
		levels[i] = metrics.LevelStat{Level: st.Level, Candidates: st.Candidates, Pruned: st.Pruned, Frequent: st.Frequent}
	}
	metrics.RecordMiningLevels(levels)
	metrics.RecordMiningRun(source, "success", analysis.Duration, len(txs), len(analysis.Rules))

	res := analysis.Result
	return &Report{
		Message:      fmt.Sprintf("%d reglas generadas", len(res.Rules)),
		Transactions: res.Parameters.TotalTransactions,
		ItemsetCount: res.ItemsetCount(),
		RuleCount:    len(res.Rules),
		Result:       res,
		Duration:     analysis.Duration,
	}, nil
}

// AnalyzeAll mines every stored date with the default thresholds and writes
// the combined result file.
func (s *Service) AnalyzeAll(ctx context.Context) (*AllReport, error) {
	start := time.Now()
	dates, err := s.store.Dates(ctx)
	if err != nil {
		metrics.RecordMiningFailure(SourceAll, "error")
		return nil, fmt.Errorf("list dates: %w", err)
	}

	results := make(map[string]*basket.Result, len(dates))
	for _, fecha := range dates {
		if basket.ContextCancelled(ctx) {
			metrics.RecordMiningFailure(SourceAll, "cancelled")
			return nil, ctx.Err()
		}
		report, err := s.AnalyzeDate(ctx, fecha, s.defaults)
		if errors.Is(err, ErrNoData) {
			continue
		}
		if err != nil {
			metrics.RecordMiningFailure(SourceAll, "error")
			return nil, fmt.Errorf("analyze %s: %w", fecha, err)
		}
		results[fecha] = report.Result
	}

	all := &AllReport{
		Message: fmt.Sprintf("Apriori aplicado a %d fechas", len(dates)),
		Dates:   dates,
		Results: results,
	}

	path, err := s.exportAll(results)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to export combined results")
	} else {
		all.ExportPath = path
	}
	all.Duration = time.Since(start)

	s.logger.Info().
		Int("dates", len(dates)).
		Dur("duration", all.Duration).
		Msg("Mined all sales dates")

	return all, nil
}

// RecordSalesAndAnalyze stores sales for fecha and mines the date again.
//
//nolint:gocritic // Params is small
func (s *Service) RecordSalesAndAnalyze(ctx context.Context, fecha string, sales []database.Sale, params basket.Params) (*Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.InsertSales(ctx, fecha, sales); err != nil {
		return nil, fmt.Errorf("store sales for %s: %w", fecha, err)
	}
	s.advance(fecha)

	logging.Ctx(ctx).Info().
		Str("component", "analysis").
		Str("fecha", fecha).
		Int("lines", len(sales)).
		Msg("Recorded sales")

	return s.AnalyzeDate(ctx, fecha, params)
}

// AnalyzeRecords normalizes raw records and mines them without storing,
// caching or exporting anything.
//
//nolint:gocritic // Params is small
func (s *Service) AnalyzeRecords(ctx context.Context, records []ingest.Record, params basket.Params) (*Report, error) {
	if err := params.Validate(); err != nil {
		metrics.RecordMiningFailure(SourceRecords, "invalid")
		return nil, err
	}
	batch, err := ingest.Normalize(records)
	if err != nil {
		metrics.RecordMiningFailure(SourceRecords, "invalid")
		return nil, err
	}
	return s.run(ctx, SourceRecords, batch.Transactions, params)
}

// SalesFromRecords converts raw records into store lines. Sale and product
// ids must be integers.
func SalesFromRecords(records []ingest.Record) ([]database.Sale, error) {
	batch, err := ingest.Normalize(records)
	if err != nil {
		return nil, err
	}

	var sales []database.Sale
	for _, tx := range batch.Transactions {
		sale, ok := tx.ID.Int()
		if !ok {
			return nil, fmt.Errorf("%w: sale id %q is not an integer", basket.ErrUnrecognizedStructure, tx.ID.String())
		}
		for _, item := range tx.Items {
			product, ok := item.Int()
			if !ok {
				return nil, fmt.Errorf("%w: product id %q is not an integer", basket.ErrUnrecognizedStructure, item.String())
			}
			sales = append(sales, database.Sale{IDVenta: sale, IDProducto: product})
		}
	}
	return sales, nil
}
