// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/breadbasket/internal/analysis"
	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/cache"
	"github.com/tomtom215/breadbasket/internal/database"
	"github.com/tomtom215/breadbasket/internal/logging"
	"github.com/tomtom215/breadbasket/internal/models"
)

// memStore is an in-memory SalesStore.
type memStore struct {
	mu      sync.Mutex
	sales   map[string][]database.Sale
	failErr error
}

func newMemStore() *memStore {
	return &memStore{sales: make(map[string][]database.Sale)}
}

func (m *memStore) InsertSales(_ context.Context, fecha string, sales []database.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.sales[fecha] = append(m.sales[fecha], sales...)
	return nil
}

func (m *memStore) TransactionsForDate(_ context.Context, fecha string) ([]basket.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	grouped := make(map[int64][]basket.Item)
	for _, s := range m.sales[fecha] {
		grouped[s.IDVenta] = append(grouped[s.IDVenta], basket.IntItem(s.IDProducto))
	}
	txs := []basket.Transaction{}
	for id, items := range grouped {
		txs = append(txs, basket.NewTransaction(basket.IntItem(id), items...))
	}
	basket.SortTransactions(txs)
	return txs, nil
}

func (m *memStore) Dates(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	dates := []string{}
	for d := range m.sales {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *memStore) lines(fecha string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sales[fecha])
}

// scenarioSales yields items 1 and 2 together in two of three sales.
var scenarioSales = []database.Sale{
	{IDVenta: 1, IDProducto: 1}, {IDVenta: 1, IDProducto: 2},
	{IDVenta: 2, IDProducto: 1}, {IDVenta: 2, IDProducto: 2},
	{IDVenta: 3, IDProducto: 1}, {IDVenta: 3, IDProducto: 3},
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	store   *memStore
	results *cache.ResultCache
	handler http.Handler
}

func setupTestEnv(t *testing.T, mwCfg *ChiMiddlewareConfig, db Pinger) *testEnv {
	t.Helper()

	store := newMemStore()
	results := cache.NewResultCache(16, time.Minute)
	params := basket.DefaultParams()
	params.MinSupport = 0.5
	params.MinConfidence = 0.5

	svc, err := analysis.NewService(store, results, nil, params, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	h := NewHandler(svc, HandlerOptions{DB: db, Results: results, Version: "test", Timeout: 5 * time.Second})
	return &testEnv{
		store:   store,
		results: results,
		handler: NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi(),
	}
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus string
		wantDB     bool
	}{
		{"connected", fakePinger{}, "healthy", true},
		{"ping fails", fakePinger{err: errors.New("down")}, "degraded", false},
		{"no database", nil, "degraded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, nil, tt.db)
			rec, body := env.do(t, http.MethodGet, "/api/v1/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var health models.HealthStatus
			if err := json.Unmarshal(body.Data, &health); err != nil {
				t.Fatal(err)
			}
			if health.Status != tt.wantStatus || health.DatabaseConnected != tt.wantDB {
				t.Errorf("health = %+v", health)
			}
			if health.Version != "test" {
				t.Errorf("Version = %q", health.Version)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("missing security headers")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})

	rec, body := env.do(t, http.MethodGet, "/api/v1/health", "")
	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if body.Metadata.RequestID != id {
		t.Errorf("metadata.request_id = %q, want %q", body.Metadata.RequestID, id)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want the client value", got)
	}
}

func TestAprioriDate(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})
	if err := env.store.InsertSales(context.Background(), "2024-03-15", scenarioSales); err != nil {
		t.Fatal(err)
	}

	rec, body := env.do(t, http.MethodGet, "/api/v1/apriori/2024-03-15", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report analysis.Report
	if err := json.Unmarshal(body.Data, &report); err != nil {
		t.Fatal(err)
	}
	if report.Fecha != "2024-03-15" || report.Transactions != 3 || report.RuleCount != 2 {
		t.Errorf("report = %+v", report)
	}
	if report.Result == nil || report.Result.Parameters.MinSupport != 0.5 {
		t.Errorf("result parameters = %+v", report.Result)
	}
	if body.Metadata.Cached {
		t.Error("first request should not be cached")
	}

	_, body = env.do(t, http.MethodGet, "/api/v1/apriori/2024-03-15", "")
	if !body.Metadata.Cached {
		t.Error("second request should be served from cache")
	}

	rec, body = env.do(t, http.MethodGet, "/api/v1/apriori/2024-03-15?min_confidence=0.9", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := json.Unmarshal(body.Data, &report); err != nil {
		t.Fatal(err)
	}
	if report.RuleCount != 1 || report.Result.Parameters.MinConfidence != 0.9 {
		t.Errorf("min_confidence=0.9 report = %+v", report)
	}
}

func TestAprioriDate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		storeErr error
		wantCode int
		wantErr  string
	}{
		{"bad date", "/api/v1/apriori/15-03-2024", nil, http.StatusBadRequest, CodeValidation},
		{"support below floor", "/api/v1/apriori/2024-03-15?min_support=0.001", nil, http.StatusBadRequest, CodeValidation},
		{"support not a number", "/api/v1/apriori/2024-03-15?min_support=abc", nil, http.StatusBadRequest, CodeValidation},
		{"confidence above one", "/api/v1/apriori/2024-03-15?min_confidence=1.5", nil, http.StatusBadRequest, CodeValidation},
		{"no data", "/api/v1/apriori/2030-01-01", nil, http.StatusNotFound, CodeNotFound},
		{"store failure", "/api/v1/apriori/2024-03-15", errors.New("disk gone"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, nil, fakePinger{})
			env.store.failErr = tt.storeErr

			rec, body := env.do(t, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if body.Status != models.StatusError || body.Error == nil || body.Error.Code != tt.wantErr {
				t.Errorf("envelope = %+v", body)
			}
			if tt.storeErr != nil && strings.Contains(rec.Body.String(), "disk gone") {
				t.Error("internal error details leaked to client")
			}
		})
	}
}

func TestAprioriAll(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})
	ctx := context.Background()
	for _, d := range []string{"2024-03-15", "2024-03-16"} {
		if err := env.store.InsertSales(ctx, d, scenarioSales); err != nil {
			t.Fatal(err)
		}
	}

	rec, body := env.do(t, http.MethodGet, "/api/v1/apriori/todos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var all analysis.AllReport
	if err := json.Unmarshal(body.Data, &all); err != nil {
		t.Fatal(err)
	}
	if len(all.Dates) != 2 || len(all.Results) != 2 {
		t.Errorf("report = %+v", all)
	}
	if all.Message != "Apriori aplicado a 2 fechas" {
		t.Errorf("Message = %q", all.Message)
	}
}

func TestRecordSales(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})

	payload := `[
		{"id_venta": 1, "producto": {"id_producto": 1}},
		{"id_venta": 1, "producto": {"id_producto": 2}},
		{"id_venta": 2, "producto": {"id_producto": 1}},
		{"id_venta": 2, "producto": {"id_producto": 2}},
		{"id_venta": 3, "producto": {"id_producto": 1}},
		{"id_venta": 3, "producto": {"id_producto": 3}}
	]`
	rec, body := env.do(t, http.MethodPost, "/api/v1/ventas/2024-03-15", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := env.store.lines("2024-03-15"); got != 6 {
		t.Errorf("stored lines = %d, want 6", got)
	}
	var report analysis.Report
	if err := json.Unmarshal(body.Data, &report); err != nil {
		t.Fatal(err)
	}
	if report.Transactions != 3 || report.RuleCount != 2 {
		t.Errorf("report = %+v", report)
	}

	// A later upload invalidates the cached result of the date.
	env.do(t, http.MethodGet, "/api/v1/apriori/2024-03-15", "")
	rec, body = env.do(t, http.MethodPost, "/api/v1/ventas/2024-03-15", `[{"id_venta": 4, "producto": 4}]`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second upload status = %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(body.Data, &report); err != nil {
		t.Fatal(err)
	}
	if report.Cached || report.Transactions != 4 {
		t.Errorf("after upload report = %+v, want 4 fresh transactions", report)
	}
}

func TestRecordSales_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{"malformed json", "/api/v1/ventas/2024-03-15", `[{"id_venta":`, http.StatusBadRequest, CodeValidation},
		{"empty body", "/api/v1/ventas/2024-03-15", "", http.StatusBadRequest, CodeValidation},
		{"empty array", "/api/v1/ventas/2024-03-15", `[]`, http.StatusBadRequest, CodeValidation},
		{"negative id", "/api/v1/ventas/2024-03-15", `[{"id_venta": -1, "producto": 2}]`, http.StatusBadRequest, CodeValidation},
		{"bad date", "/api/v1/ventas/2024-13-45", `[{"id_venta": 1, "producto": 2}]`, http.StatusBadRequest, CodeValidation},
		{"string ids", "/api/v1/ventas/2024-03-15", `[{"id_venta": "a", "producto": "pan"}]`, http.StatusUnprocessableEntity, CodeUnrecognizedStructure},
		{"unknown layout", "/api/v1/ventas/2024-03-15", `[{"foo": 1, "bar": 2}]`, http.StatusUnprocessableEntity, CodeUnrecognizedStructure},
		{"not an array", "/api/v1/ventas/2024-03-15", `{"id_venta": 1}`, http.StatusBadRequest, CodeValidation},
		{"array of numbers", "/api/v1/ventas/2024-03-15", `[1, 2]`, http.StatusBadRequest, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, nil, fakePinger{})
			rec, body := env.do(t, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if body.Error == nil || body.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %s", body.Error, tt.wantErr)
			}
			if got := env.store.lines("2024-03-15"); got != 0 {
				t.Errorf("stored %d lines on a rejected upload", got)
			}
		})
	}
}

func TestAnalyzeRecords(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})

	payload := `[
		{"ticket": "t1", "articulo_item": "pan"},
		{"ticket": "t1", "articulo_item": "leche"},
		{"ticket": "t2", "articulo_item": "pan"},
		{"ticket": "t2", "articulo_item": "leche"}
	]`
	rec, _ := env.do(t, http.MethodPost, "/api/v1/apriori/analyze", payload)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("layout without sale keyword status = %d, want 422", rec.Code)
	}

	payload = `[
		{"sale_id": "t1", "product_id": "pan"},
		{"sale_id": "t1", "product_id": "leche"},
		{"sale_id": "t2", "product_id": "pan"},
		{"sale_id": "t2", "product_id": "leche"}
	]`
	rec, body := env.do(t, http.MethodPost, "/api/v1/apriori/analyze?min_support=0.5&min_confidence=1", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report analysis.Report
	if err := json.Unmarshal(body.Data, &report); err != nil {
		t.Fatal(err)
	}
	if report.Transactions != 2 || report.RuleCount != 2 {
		t.Errorf("report = %+v", report)
	}
	if len(env.store.sales) != 0 {
		t.Error("analyze must not store records")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	env := setupTestEnv(t, cfg, fakePinger{})

	for i := 0; i < 2; i++ {
		rec, _ := env.do(t, http.MethodGet, "/api/v1/apriori/2030-01-01", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("request %d status = %d, want 404", i, rec.Code)
		}
	}
	rec, body := env.do(t, http.MethodGet, "/api/v1/apriori/2030-01-01", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if body.Error == nil || body.Error.Code != CodeRateLimited {
		t.Errorf("error = %+v", body.Error)
	}

	// Health has its own, larger limit.
	if rec, _ := env.do(t, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRoutingFallbacks(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})

	rec, body := env.do(t, http.MethodGet, "/api/v1/unknown", "")
	if rec.Code != http.StatusNotFound || body.Error == nil || body.Error.Code != CodeNotFound {
		t.Errorf("unknown route = %d %+v", rec.Code, body.Error)
	}

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/apriori/2024-03-15", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestEnv(t, nil, fakePinger{})
	env.do(t, http.MethodGet, "/api/v1/apriori/2030-01-01", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{basket.ErrInvalidParameter, http.StatusBadRequest},
		{basket.ErrUnrecognizedStructure, http.StatusUnprocessableEntity},
		{analysis.ErrNoData, http.StatusNotFound},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got, _, _ := classifyError(tt.err); got != tt.want {
			t.Errorf("classifyError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
