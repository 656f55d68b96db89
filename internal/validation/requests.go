// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package validation

// DateLayout is the layout of sale dates in paths and storage.
const DateLayout = "2006-01-02"

// MiningParamsRequest holds the thresholds accepted by the mining endpoints.
// The support floor of 0.01 keeps a single request from enumerating every
// itemset of a large store.
type MiningParamsRequest struct {
	MinSupport    float64 `json:"min_support" validate:"gte=0.01,lte=1"`
	MinConfidence float64 `json:"min_confidence" validate:"gte=0,lte=1"`
}

// DateRequest identifies one sales date.
type DateRequest struct {
	Fecha string `json:"fecha" validate:"required,datetime=2006-01-02"`
}

// SaleLineRequest is one product of one sale.
type SaleLineRequest struct {
	IDVenta    int64 `json:"id_venta" validate:"gte=0"`
	IDProducto int64 `json:"id_producto" validate:"gte=0"`
}

// SalesBatchRequest is the body of a sales upload for one date.
type SalesBatchRequest struct {
	Fecha string            `json:"fecha" validate:"required,datetime=2006-01-02"`
	Lines []SaleLineRequest `json:"ventas" validate:"required,min=1,max=50000,dive"`
}
