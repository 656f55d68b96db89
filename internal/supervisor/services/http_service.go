// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService binds the API listener itself, serves on it until its
// context is canceled, then drains in-flight requests. Mining runs inside
// request handlers, so the drain deadline is what bounds an interrupted run.
type HTTPServerService struct {
	server       HTTPServer
	addr         string
	drainTimeout time.Duration
	logger       zerolog.Logger

	mu    sync.Mutex
	bound net.Addr
}

// NewHTTPServerService serves server on addr. A non-positive drainTimeout
// becomes 10s.
//
//nolint:gocritic // zerolog.Logger is passed by value like elsewhere
func NewHTTPServerService(server HTTPServer, addr string, drainTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if drainTimeout <= 0 {
		drainTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:       server,
		addr:         addr,
		drainTimeout: drainTimeout,
		logger:       logger.With().Str("service", "http-server").Logger(),
	}
}

// Addr returns the bound listen address, or nil while not serving. With
// port 0 it reports the port the kernel picked.
func (h *HTTPServerService) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bound
}

func (h *HTTPServerService) setBound(a net.Addr) {
	h.mu.Lock()
	h.bound = a
	h.mu.Unlock()
}

// Serve implements suture.Service. A port that cannot be bound fails the
// call right away so the supervisor backs off instead of spinning.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", h.addr, err)
	}
	h.setBound(ln.Addr())
	defer h.setBound(nil)

	served := make(chan error, 1)
	go func() {
		served <- h.server.Serve(ln)
	}()
	h.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	select {
	case err := <-served:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)

	case <-ctx.Done():
	}

	start := time.Now()
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.drainTimeout)
	defer cancel()

	if err := h.server.Shutdown(drainCtx); err != nil {
		h.logger.Warn().Err(err).Dur("drain_timeout", h.drainTimeout).Msg("Requests still running at drain deadline")
		return fmt.Errorf("drain http server: %w", err)
	}
	<-served
	h.logger.Info().Dur("drained_in", time.Since(start)).Msg("HTTP server stopped")
	return ctx.Err()
}

// String names the service in supervisor logs.
func (h *HTTPServerService) String() string {
	return "http-server"
}
