// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/metrics"
)

func sampleResult() *basket.Result {
	a, b := basket.IntItem(1), basket.IntItem(2)
	return &basket.Result{
		Parameters: basket.Parameters{MinSupport: 0.5, MinConfidence: 0.5, TotalTransactions: 3},
		FrequentItemsets: map[string][]basket.Itemset{
			"1": {basket.NewItemset(a), basket.NewItemset(b)},
			"2": {basket.NewItemset(a, b)},
		},
		Rules: []basket.ExportedRule{{
			Antecedent: basket.NewItemset(a),
			Consequent: basket.NewItemset(b),
			Support:    0.6667,
			Confidence: 1,
			Lift:       1,
		}},
	}
}

func TestWriteDate(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	before := testutil.ToFloat64(metrics.ExportWrites.WithLabelValues("date", "success"))
	path, err := w.WriteDate("2024-03-15", sampleResult())
	if err != nil {
		t.Fatalf("WriteDate() error = %v", err)
	}
	if want := filepath.Join(dir, "2024-03-15", DateFileName); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if got := testutil.ToFloat64(metrics.ExportWrites.WithLabelValues("date", "success")) - before; got != 1 {
		t.Errorf("ExportWrites delta = %v, want 1", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, key := range []string{`"parametros"`, `"itemsets_frecuentes"`, `"reglas_asociacion"`, `"total_transacciones": 3`, `"antecedente"`} {
		if !strings.Contains(text, key) {
			t.Errorf("file missing %s:\n%s", key, text)
		}
	}
	if !strings.Contains(text, "\n  ") {
		t.Error("file should be indented")
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got.Parameters != sampleResult().Parameters || len(got.Rules) != 1 || !got.Rules[0].Consequent.Equal(basket.NewItemset(basket.IntItem(2))) {
		t.Errorf("ReadFile() = %+v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the result file", len(entries))
	}
}

func TestWriteDate_RejectsPathEscape(t *testing.T) {
	w := NewWriter(t.TempDir())
	for _, fecha := range []string{"", ".", "..", "../x", "a/b"} {
		if _, err := w.WriteDate(fecha, sampleResult()); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("WriteDate(%q) error = %v, want ErrInvalidDate", fecha, err)
		}
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "data"))

	path, err := w.WriteAll(map[string]*basket.Result{
		"2024-03-15": sampleResult(),
		"2024-03-16": sampleResult(),
	})
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if filepath.Base(path) != AllFileName {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]basket.Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded["2024-03-16"].Parameters.TotalTransactions != 3 {
		t.Errorf("decoded = %+v", decoded)
	}

	path, err = w.WriteAll(nil)
	if err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("WriteAll(nil) wrote %q, want {}", data)
	}
}

func TestNilWriter(t *testing.T) {
	var w *Writer
	if path, err := w.WriteDate("2024-03-15", sampleResult()); path != "" || err != nil {
		t.Errorf("nil WriteDate() = %q, %v", path, err)
	}
	if path, err := w.WriteAll(nil); path != "" || err != nil {
		t.Errorf("nil WriteAll() = %q, %v", path, err)
	}
	if w.DataDir() != "" {
		t.Error("nil DataDir() should be empty")
	}
}
