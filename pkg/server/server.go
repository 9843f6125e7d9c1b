// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server exposes metrics, the event stream and watch health
// over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	. "github.com/black-desk/lib/go/errwrap"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var (
	ErrAddressMissing = errors.New("Listen address is missing.")
	ErrLoggerMissing  = errors.New("Logger is missing.")
)

const ShutdownTimeout = 5 * time.Second

// HealthFunc reports the state of every watch by its id.
type HealthFunc func() map[string]string

type Server struct {
	addr    string
	metrics http.Handler
	events  http.Handler
	health  HealthFunc
	log     *zap.SugaredLogger

	router chi.Router
}

type Opt func(s *Server) (ret *Server, err error)

func New(opts ...Opt) (ret *Server, err error) {
	defer Wrap(&err, "create http server")

	s := &Server{}
	for i := range opts {
		s, err = opts[i](s)
		if err != nil {
			return
		}
	}

	if s.addr == "" {
		err = ErrAddressMissing
		return
	}

	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}

	s.router = s.routes()

	ret = s
	return
}

func WithAddress(addr string) Opt {
	return func(s *Server) (ret *Server, err error) {
		if addr == "" {
			err = ErrAddressMissing
			return
		}

		s.addr = addr
		ret = s
		return
	}
}

func WithMetrics(h http.Handler) Opt {
	return func(s *Server) (ret *Server, err error) {
		s.metrics = h
		ret = s
		return
	}
}

func WithEvents(h http.Handler) Opt {
	return func(s *Server) (ret *Server, err error) {
		s.events = h
		ret = s
		return
	}
}

func WithHealth(f HealthFunc) Opt {
	return func(s *Server) (ret *Server, err error) {
		s.health = f
		ret = s
		return
	}
}

func WithLogger(log *zap.SugaredLogger) Opt {
	return func(s *Server) (ret *Server, err error) {
		if log == nil {
			err = ErrLoggerMissing
			return
		}

		s.log = log
		ret = s
		return
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	if s.events != nil {
		r.Method(http.MethodGet, "/events", s.events)
	}

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth answers 503 when any watch has failed.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	states := map[string]string{}
	if s.health != nil {
		states = s.health()
	}

	status := http.StatusOK
	for _, state := range states {
		if state == "failed" {
			status = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(map[string]any{"watches": states})
	if err != nil {
		s.log.Debugw("Failed to write health response.", "error", err)
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) (err error) {
	defer Wrap(&err, "run http server")

	lis, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.addr)
	if err != nil {
		return
	}

	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) (err error) {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.log.Infow("HTTP server listening.", "address", lis.Addr().String())

	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(lis)
	}()

	select {
	case err = <-served:
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		s.log.Warnw("HTTP server did not shut down in time.", "error", err)
		_ = srv.Close()
	}

	<-served
	s.log.Debugw("HTTP server stopped.")

	return ctx.Err()
}
