// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/breadbasket/internal/analysis"
)

// MiningRunner mines every stored date. *analysis.Service implements it.
type MiningRunner interface {
	AnalyzeAll(ctx context.Context) (*analysis.AllReport, error)
}

// MiningServiceConfig configures scheduled mining.
type MiningServiceConfig struct {
	// RunOnStartup mines once as soon as the service starts.
	RunOnStartup bool

	// Interval between runs. Default: 1h
	Interval time.Duration

	// RunTimeout bounds a single run. Default: 30m
	RunTimeout time.Duration
}

// MiningService periodically mines every stored date and rewrites the
// combined result file. A failed run is logged and retried at the next tick.
type MiningService struct {
	runner MiningRunner
	config MiningServiceConfig
	logger zerolog.Logger
	name   string
}

// NewMiningService creates a scheduled mining service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewMiningService(runner MiningRunner, cfg MiningServiceConfig, logger zerolog.Logger) *MiningService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Minute
	}
	return &MiningService{
		runner: runner,
		config: cfg,
		logger: logger.With().Str("service", "mining").Logger(),
		name:   "mining-scheduler",
	}
}

// Serve implements suture.Service.
func (s *MiningService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Msg("mining scheduler starting")

	if s.config.RunOnStartup {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("mining scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *MiningService) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	report, err := s.runner.AnalyzeAll(runCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("scheduled mining failed")
		}
		return
	}

	s.logger.Info().
		Int("dates", len(report.Dates)).
		Str("file", report.ExportPath).
		Dur("duration", report.Duration).
		Msg("scheduled mining complete")
}

// String names the service in supervisor logs.
func (s *MiningService) String() string {
	return s.name
}
