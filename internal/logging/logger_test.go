// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// captureGlobal swaps in a JSON logger writing to a buffer for the duration
// of the test.
func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if ValidLevel("bogus") {
		t.Error("ValidLevel(bogus) = true, want false")
	}
	if !ValidLevel("Warn") {
		t.Error("ValidLevel(Warn) = false, want true")
	}
}

func TestInit_ConsoleAndJSON(t *testing.T) {
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	var jsonBuf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &jsonBuf})
	Debug().Msg("hidden")
	Info().Str("k", "v").Msg("shown")
	if strings.Contains(jsonBuf.String(), "hidden") {
		t.Error("debug entry written at info level")
	}
	entry := decodeLine(t, &jsonBuf)
	if entry["message"] != "shown" || entry["k"] != "v" {
		t.Errorf("entry = %v, want message=shown k=v", entry)
	}

	var consoleBuf bytes.Buffer
	Init(Config{Level: "debug", Format: "console", Output: &consoleBuf})
	Debug().Msg("console line")
	if !strings.Contains(consoleBuf.String(), "console line") {
		t.Errorf("console output = %q", consoleBuf.String())
	}
}

func TestCtx_AddsIDs(t *testing.T) {
	buf := captureGlobal(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithRunID(ctx, "run-9")
	Ctx(ctx).Info().Msg("hello")

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", entry["request_id"])
	}
	if entry["run_id"] != "run-9" {
		t.Errorf("run_id = %v, want run-9", entry["run_id"])
	}
}

func TestGenerateIDs(t *testing.T) {
	if a, b := GenerateRequestID(), GenerateRequestID(); a == b || len(a) != 36 {
		t.Errorf("GenerateRequestID() = %q, %q", a, b)
	}
	if id := GenerateRunID(); len(id) != 8 {
		t.Errorf("GenerateRunID() = %q, want 8 characters", id)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	zl := NewTestLogger(&buf)
	prevLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })

	logger := slog.New(NewSlogHandlerWithLogger(zl)).
		WithGroup("run").
		With("service", "mining")
	logger.Warn("service restarted", "attempt", 3, "err", errors.New("boom"))

	entry := decodeLine(t, &buf)
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["message"] != "service restarted" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["run.service"] != "mining" {
		t.Errorf("run.service = %v, want mining", entry["run.service"])
	}
	if entry["run.attempt"] != float64(3) {
		t.Errorf("run.attempt = %v, want 3", entry["run.attempt"])
	}
	if entry["run.err"] != "boom" {
		t.Errorf("run.err = %v, want boom", entry["run.err"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	zl := zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel)
	h := NewSlogHandlerWithLogger(zl)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true for warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(error) = false for warn logger")
	}
}
