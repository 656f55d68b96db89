// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

/*
Package ingest turns raw sales records into mining transactions.

Raw input is a JSON array of objects, one per sold product. Three record
shapes are recognized, chosen from the first record:

  - nested:  {"id_venta": 1, "producto": {"id_producto": 7}} or "producto": 7
  - flat:    {"venta_id" | "sale_id": 1, "producto_id" | "product_id" | "id_producto": 7}
  - keyword: the first key (in sorted order) mentioning venta, sale or
    transaction, paired with the first other key mentioning producto,
    product or item

Flat records that lack either field are skipped. In the nested and keyword
shapes a missing field fails the whole batch. Input matching no shape yields
basket.ErrUnrecognizedStructure.

Identifiers are decoded with json.Number so integer ids stay integers; string
ids are kept as strings. Products of one sale are collapsed into a canonical
itemset and transactions are returned in ascending sale id order.

Generate produces synthetic records in the nested shape for demos and tests.
*/
package ingest
