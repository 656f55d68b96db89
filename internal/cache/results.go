// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package cache

import (
	"strconv"
	"time"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/metrics"
)

// ResultCache stores mining results per date and threshold pair.
// A nil *ResultCache is valid and caches nothing.
type ResultCache struct {
	lru *LRU[*basket.Result]
}

// NewResultCache creates a result cache.
func NewResultCache(maxEntries int, ttl time.Duration) *ResultCache {
	return &ResultCache{lru: NewLRU[*basket.Result](maxEntries, ttl)}
}

// ResultKey builds the cache key of one date and threshold pair. Keys of the
// same date share the "<fecha>|" prefix.
func ResultKey(fecha string, minSupport, minConfidence float64) string {
	return fecha + "|" +
		strconv.FormatFloat(minSupport, 'g', -1, 64) + "|" +
		strconv.FormatFloat(minConfidence, 'g', -1, 64)
}

// Get returns a cached result. Callers must treat it as read-only.
func (c *ResultCache) Get(fecha string, minSupport, minConfidence float64) (*basket.Result, bool) {
	if c == nil {
		return nil, false
	}
	res, ok := c.lru.Get(ResultKey(fecha, minSupport, minConfidence))
	metrics.RecordCacheLookup(ok)
	return res, ok
}

// Put stores a result.
func (c *ResultCache) Put(fecha string, minSupport, minConfidence float64, res *basket.Result) {
	if c == nil || res == nil {
		return
	}
	c.lru.Add(ResultKey(fecha, minSupport, minConfidence), res)
	metrics.CacheEntries.Set(float64(c.lru.Len()))
}

// InvalidateDate drops every cached result of fecha, for example after new
// sales were recorded for it.
func (c *ResultCache) InvalidateDate(fecha string) int {
	if c == nil {
		return 0
	}
	n := c.lru.RemovePrefix(fecha + "|")
	metrics.CacheEntries.Set(float64(c.lru.Len()))
	return n
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
