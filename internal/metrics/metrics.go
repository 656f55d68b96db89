// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package metrics defines the Prometheus instruments of the service. All
// collectors register with the default registry and are served by promhttp.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mining Metrics
	MiningRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basket_mining_duration_seconds",
			Help:    "Duration of complete mining runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"source"}, // "date", "all", "records"
	)

	MiningRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_mining_runs_total",
			Help: "Total number of mining runs by outcome",
		},
		[]string{"source", "outcome"}, // outcome: "success", "empty", "invalid", "error"
	)

	MiningCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_candidates_total",
			Help: "Total number of candidate itemsets generated per level",
		},
		[]string{"level"},
	)

	MiningCandidatesPruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_candidates_pruned_total",
			Help: "Total number of candidates dropped for having an infrequent subset",
		},
		[]string{"level"},
	)

	MiningFrequentItemsets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_frequent_itemsets_total",
			Help: "Total number of frequent itemsets found per level",
		},
		[]string{"level"},
	)

	MiningRulesEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "basket_rules_emitted_total",
			Help: "Total number of association rules emitted",
		},
	)

	MiningTransactions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "basket_run_transactions",
			Help:    "Number of transactions per mining run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// Ingest Metrics
	SalesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "basket_sales_recorded_total",
			Help: "Total number of sale lines written to the store",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total number of mining result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total number of mining result cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of cached mining results",
		},
	)

	// Export Metrics
	ExportWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_export_writes_total",
			Help: "Total number of result files written",
		},
		[]string{"kind", "outcome"}, // kind: "date", "all", "file"
	)
)

// LevelStat is the per-level summary recorded by RecordMiningLevels.
type LevelStat struct {
	Level      int
	Candidates int
	Pruned     int
	Frequent   int
}

// RecordMiningRun records a finished mining run.
func RecordMiningRun(source, outcome string, duration time.Duration, transactions, rules int) {
	MiningRuns.WithLabelValues(source, outcome).Inc()
	MiningRunDuration.WithLabelValues(source).Observe(duration.Seconds())
	MiningTransactions.Observe(float64(transactions))
	MiningRulesEmitted.Add(float64(rules))
}

// RecordMiningFailure records a run that did not produce a result.
func RecordMiningFailure(source, outcome string) {
	MiningRuns.WithLabelValues(source, outcome).Inc()
}

// RecordMiningLevels records candidate and frequent counts per level.
func RecordMiningLevels(levels []LevelStat) {
	for _, l := range levels {
		level := strconv.Itoa(l.Level)
		MiningCandidates.WithLabelValues(level).Add(float64(l.Candidates))
		MiningCandidatesPruned.WithLabelValues(level).Add(float64(l.Pruned))
		MiningFrequentItemsets.WithLabelValues(level).Add(float64(l.Frequent))
	}
}

// RecordSales records sale lines persisted by the store.
func RecordSales(n int) {
	SalesRecorded.Add(float64(n))
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordExport records a result file write.
func RecordExport(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ExportWrites.WithLabelValues(kind, outcome).Inc()
}
