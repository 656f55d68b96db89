// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package database stores sales lines in DuckDB and reads them back as
// mining transactions.
//
// # Schema
//
// All dates share one table:
//
//	ventas(id BIGINT, id_venta BIGINT, id_producto BIGINT, fecha_venta VARCHAR)
//
// id is assigned from the ventas_id_seq sequence. fecha_venta holds the sale
// date as YYYY-MM-DD and is indexed.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	err = db.InsertSales(ctx, "2024-03-15", []database.Sale{{IDVenta: 1, IDProducto: 7}})
//	txs, err := db.TransactionsForDate(ctx, "2024-03-15")
//
// Every query is timed and reported through the metrics package.
package database
