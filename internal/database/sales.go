// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/metrics"
)

// Sale is one product line of one sale.
type Sale struct {
	IDVenta    int64 `json:"id_venta"`
	IDProducto int64 `json:"id_producto"`
}

func (db *DB) beginOp() error {
	db.mu.RLock()
	if db.closed {
		db.mu.RUnlock()
		return ErrClosed
	}
	return nil
}

func (db *DB) endOp() {
	db.mu.RUnlock()
}

// InsertSales stores sales for fecha in a single transaction. Either every
// line is stored or none is.
func (db *DB) InsertSales(ctx context.Context, fecha string, sales []Sale) (err error) {
	if len(sales) == 0 {
		return nil
	}
	if err := db.beginOp(); err != nil {
		return err
	}
	defer db.endOp()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("insert", salesTable, time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer rollbackQuietly(tx)

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ventas (id_venta, id_producto, fecha_venta) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer closeWithLog(stmt, "insert statement")

	for i, s := range sales {
		if _, err = stmt.ExecContext(ctx, s.IDVenta, s.IDProducto, fecha); err != nil {
			return fmt.Errorf("insert sale %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	metrics.RecordSales(len(sales))
	return nil
}

// TransactionsForDate returns the sales of fecha grouped by sale id, in
// ascending sale id order. A date without sales yields an empty slice.
func (db *DB) TransactionsForDate(ctx context.Context, fecha string) (txs []basket.Transaction, err error) {
	if err := db.beginOp(); err != nil {
		return nil, err
	}
	defer db.endOp()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("transactions_for_date", salesTable, time.Since(start), err)
	}()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id_venta, id_producto FROM ventas WHERE fecha_venta = ? ORDER BY id_venta, id_producto`, fecha)
	if err != nil {
		return nil, fmt.Errorf("query sales for %s: %w", fecha, err)
	}
	defer closeWithLog(rows, "rows")

	txs = []basket.Transaction{}
	var (
		current  int64
		products []basket.Item
	)
	flush := func() {
		if len(products) > 0 {
			txs = append(txs, basket.NewTransaction(basket.IntItem(current), products...))
		}
		products = products[:0]
	}

	for rows.Next() {
		var idVenta, idProducto int64
		if err = rows.Scan(&idVenta, &idProducto); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if len(products) > 0 && idVenta != current {
			flush()
		}
		current = idVenta
		products = append(products, basket.IntItem(idProducto))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	flush()
	return txs, nil
}

// Dates returns the distinct sale dates in ascending order.
func (db *DB) Dates(ctx context.Context) (dates []string, err error) {
	if err := db.beginOp(); err != nil {
		return nil, err
	}
	defer db.endOp()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("dates", salesTable, time.Since(start), err)
	}()

	rows, err := db.conn.QueryContext(ctx, `SELECT DISTINCT fecha_venta FROM ventas ORDER BY fecha_venta`)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer closeWithLog(rows, "rows")

	dates = []string{}
	for rows.Next() {
		var d string
		if err = rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dates: %w", err)
	}
	return dates, nil
}

// CountSales returns the number of stored sale lines for fecha, or for all
// dates when fecha is empty.
func (db *DB) CountSales(ctx context.Context, fecha string) (n int64, err error) {
	if err := db.beginOp(); err != nil {
		return 0, err
	}
	defer db.endOp()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("count", salesTable, time.Since(start), err)
	}()

	if fecha == "" {
		err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM ventas`).Scan(&n)
	} else {
		err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM ventas WHERE fecha_venta = ?`, fecha).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}
