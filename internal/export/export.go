// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package export writes mining results as indented JSON files.
//
// Layout under the data directory:
//
//	<data_dir>/<fecha>/resultados_apriori.json   one date
//	<data_dir>/resultados_apriori_todos.json     every date, keyed by fecha
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/breadbasket/internal/basket"
	"github.com/tomtom215/breadbasket/internal/metrics"
)

const (
	// DateFileName is the result file written per date.
	DateFileName = "resultados_apriori.json"

	// AllFileName is the combined result file of every date.
	AllFileName = "resultados_apriori_todos.json"
)

// ErrInvalidDate is returned for a date that would escape the data directory.
var ErrInvalidDate = errors.New("invalid export date")

// Writer writes result files under a data directory. A nil *Writer is a
// disabled sink: every write succeeds and returns an empty path.
type Writer struct {
	dataDir string
}

// NewWriter creates a writer rooted at dataDir.
func NewWriter(dataDir string) *Writer {
	return &Writer{dataDir: dataDir}
}

// DataDir returns the root directory.
func (w *Writer) DataDir() string {
	if w == nil {
		return ""
	}
	return w.dataDir
}

// WriteDate writes res to <data_dir>/<fecha>/resultados_apriori.json.
func (w *Writer) WriteDate(fecha string, res *basket.Result) (string, error) {
	if w == nil {
		return "", nil
	}
	if fecha == "" || fecha == "." || fecha == ".." || filepath.Base(fecha) != fecha {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, fecha)
	}
	path := filepath.Join(w.dataDir, fecha, DateFileName)
	err := WriteFile(path, res)
	metrics.RecordExport("date", err)
	return path, err
}

// WriteAll writes every result to <data_dir>/resultados_apriori_todos.json
// as an object keyed by date.
func (w *Writer) WriteAll(results map[string]*basket.Result) (string, error) {
	if w == nil {
		return "", nil
	}
	if results == nil {
		results = map[string]*basket.Result{}
	}
	path := filepath.Join(w.dataDir, AllFileName)
	err := WriteFile(path, results)
	metrics.RecordExport("all", err)
	return path, err
}

// WriteFile writes v as indented JSON to path, creating parent directories.
// The file is written to a temporary name and renamed into place.
func WriteFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o640); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes a result file written by WriteFile.
func ReadFile(path string) (*basket.Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, err
	}
	var res basket.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &res, nil
}
