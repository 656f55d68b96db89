// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package database

import (
	"context"
	"fmt"
	"time"
)

const salesTable = "ventas"

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func schemaQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS ventas_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS ventas (
			id BIGINT PRIMARY KEY DEFAULT nextval('ventas_id_seq'),
			id_venta BIGINT NOT NULL,
			id_producto BIGINT NOT NULL,
			fecha_venta VARCHAR NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ventas_fecha ON ventas(fecha_venta)`,
	}
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, q := range schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
