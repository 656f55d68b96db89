// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package ingest

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/logging"
)

const (
	nestedSaleKey      = "id_venta"
	nestedProductKey   = "producto"
	nestedProductIDKey = "id_producto"
)

var (
	flatSaleKeys    = []string{"venta_id", "sale_id"}
	flatProductKeys = []string{"producto_id", "product_id", "id_producto"}

	saleKeywords    = []string{"venta", "sale", "transaction"}
	productKeywords = []string{"producto", "product", "item"}
)

// layout is a detected shape plus the keys it reads.
type layout struct {
	shape        Shape
	saleField    string
	productField string
}

// Normalize groups records into transactions. An empty slice yields an empty
// batch without error.
func Normalize(records []Record) (*Batch, error) {
	batch := &Batch{Records: len(records)}
	if len(records) == 0 {
		batch.Transactions = []basket.Transaction{}
		return batch, nil
	}

	lay, err := detectLayout(records[0])
	if err != nil {
		return nil, err
	}
	batch.Shape = lay.shape
	batch.SaleField = lay.saleField
	batch.ProductField = lay.productField

	grouped := make(map[basket.Item][]basket.Item)
	for i, rec := range records {
		sale, product, ok, err := lay.extract(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", basket.ErrUnrecognizedStructure, i, err)
		}
		if !ok {
			batch.Skipped++
			continue
		}
		grouped[sale] = append(grouped[sale], product)
	}

	txs := make([]basket.Transaction, 0, len(grouped))
	for sale, products := range grouped {
		txs = append(txs, basket.NewTransaction(sale, products...))
	}
	basket.SortTransactions(txs)
	batch.Transactions = txs

	logging.Debug().
		Str("component", "ingest").
		Str("shape", string(lay.shape)).
		Str("sale_field", lay.saleField).
		Str("product_field", lay.productField).
		Int("records", batch.Records).
		Int("skipped", batch.Skipped).
		Int("transactions", len(txs)).
		Msg("Normalized sales records")

	return batch, nil
}

// detectLayout picks the record shape from the first record.
func detectLayout(first Record) (layout, error) {
	_, hasSale := first[nestedSaleKey]
	_, hasProduct := first[nestedProductKey]
	if hasSale && hasProduct {
		return layout{shape: ShapeNested, saleField: nestedSaleKey, productField: nestedProductKey}, nil
	}

	if sale := firstPresent(first, flatSaleKeys); sale != "" {
		return layout{shape: ShapeFlat, saleField: sale, productField: firstPresent(first, flatProductKeys)}, nil
	}

	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sale := firstMatching(keys, saleKeywords, "")
	product := firstMatching(keys, productKeywords, sale)
	if sale != "" && product != "" {
		return layout{shape: ShapeKeyword, saleField: sale, productField: product}, nil
	}

	return layout{}, fmt.Errorf("%w: no sale and product fields in keys %v", basket.ErrUnrecognizedStructure, keys)
}

func firstPresent(rec Record, keys []string) string {
	for _, k := range keys {
		if _, ok := rec[k]; ok {
			return k
		}
	}
	return ""
}

func firstMatching(keys, keywords []string, exclude string) string {
	for _, k := range keys {
		if k == exclude {
			continue
		}
		lower := strings.ToLower(k)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return k
			}
		}
	}
	return ""
}

// extract reads one record. ok is false when a flat record should be skipped.
func (l layout) extract(rec Record) (sale, product basket.Item, ok bool, err error) {
	switch l.shape {
	case ShapeNested:
		sale, err = requiredItem(rec, nestedSaleKey)
		if err != nil {
			return sale, product, false, err
		}
		raw, present := rec[nestedProductKey]
		if !present {
			return sale, product, false, fmt.Errorf("missing %q", nestedProductKey)
		}
		if obj, isObj := raw.(map[string]any); isObj {
			product, err = requiredItem(obj, nestedProductIDKey)
			if err != nil {
				return sale, product, false, fmt.Errorf("%s: %w", nestedProductKey, err)
			}
			return sale, product, true, nil
		}
		product, err = toItem(raw)
		if err != nil {
			return sale, product, false, fmt.Errorf("%s: %w", nestedProductKey, err)
		}
		return sale, product, true, nil

	case ShapeFlat:
		saleKey := firstPresent(rec, flatSaleKeys)
		productKey := firstPresent(rec, flatProductKeys)
		if saleKey == "" || productKey == "" {
			return sale, product, false, nil
		}
		var serr, perr error
		sale, serr = toItem(rec[saleKey])
		product, perr = toItem(rec[productKey])
		if serr != nil || perr != nil || blank(sale) || blank(product) {
			return sale, product, false, nil
		}
		return sale, product, true, nil

	default:
		sale, err = requiredItem(rec, l.saleField)
		if err != nil {
			return sale, product, false, err
		}
		product, err = requiredItem(rec, l.productField)
		if err != nil {
			return sale, product, false, err
		}
		return sale, product, true, nil
	}
}

// blank reports a zero or empty identifier. Flat exports use these for
// missing values.
func blank(item basket.Item) bool {
	return item == basket.IntItem(0) || item == basket.StringItem("")
}

func requiredItem(rec Record, key string) (basket.Item, error) {
	raw, ok := rec[key]
	if !ok {
		return basket.Item{}, fmt.Errorf("missing %q", key)
	}
	item, err := toItem(raw)
	if err != nil {
		return basket.Item{}, fmt.Errorf("%q: %w", key, err)
	}
	return item, nil
}

// toItem converts a decoded identifier. Records built in Go may carry native
// integer types; decoded JSON carries json.Number or string.
func toItem(v any) (basket.Item, error) {
	switch x := v.(type) {
	case json.Number:
		return basket.ParseNumber(x.String())
	case string:
		return basket.StringItem(x), nil
	case int:
		return basket.IntItem(int64(x)), nil
	case int64:
		return basket.IntItem(x), nil
	case int32:
		return basket.IntItem(int64(x)), nil
	case float64:
		if math.IsNaN(x) {
			return basket.Item{}, fmt.Errorf("identifier is NaN")
		}
		return basket.ParseNumber(strconv.FormatFloat(x, 'f', -1, 64))
	case nil:
		return basket.Item{}, fmt.Errorf("identifier is null")
	default:
		return basket.Item{}, fmt.Errorf("unsupported identifier type %T", v)
	}
}
