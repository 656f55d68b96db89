// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/database"
)

// ErrNoData is returned when a date has no stored sales.
var ErrNoData = errors.New("no sales data")

// Run sources used in metrics and logs.
const (
	SourceDate    = "date"
	SourceAll     = "all"
	SourceRecords = "records"
)

// SalesStore is the persistence the service reads from and writes to.
// *database.DB implements it.
type SalesStore interface {
	InsertSales(ctx context.Context, fecha string, sales []database.Sale) error
	TransactionsForDate(ctx context.Context, fecha string) ([]basket.Transaction, error)
	Dates(ctx context.Context) ([]string, error)
}

// Sink receives finished results. *export.Writer implements it.
type Sink interface {
	WriteDate(fecha string, res *basket.Result) (string, error)
	WriteAll(results map[string]*basket.Result) (string, error)
}

// Report describes one mining run.
type Report struct {
	Message      string         `json:"mensaje"`
	Fecha        string         `json:"fecha,omitempty"`
	Transactions int            `json:"total_transacciones"`
	ItemsetCount int            `json:"total_itemsets"`
	RuleCount    int            `json:"total_reglas"`
	Result       *basket.Result `json:"resultado"`
	ExportPath   string         `json:"archivo,omitempty"`
	Cached       bool           `json:"cached"`
	Duration     time.Duration  `json:"-"`
}

// AllReport describes a run over every stored date.
type AllReport struct {
	Message    string                    `json:"mensaje"`
	Dates      []string                  `json:"fechas"`
	Results    map[string]*basket.Result `json:"resultados"`
	ExportPath string                    `json:"archivo,omitempty"`
	Duration   time.Duration             `json:"-"`
}
