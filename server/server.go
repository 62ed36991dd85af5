// Package server exposes the horoscope pipeline over HTTP: a JSON API,
// an SVG chart endpoint, a WebSocket progress stream and an embedded
// form UI.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sahadev/jyotish/ai/provider"
	"github.com/sahadev/jyotish/ai/tracker"
	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/errors"
	"github.com/sahadev/jyotish/geocode"
	"github.com/sahadev/jyotish/horoscope"
	"github.com/sahadev/jyotish/logger"
)

// Shutdown and request timeouts
const (
	ShutdownTimeout = 10 * time.Second
	ReadTimeout     = 15 * time.Second
	// LLM readings are slow; the write timeout has to cover a full
	// model round trip plus the retry.
	WriteTimeout = 5 * time.Minute
	IdleTimeout  = 60 * time.Second
)

// Server runs the jyotish HTTP service
type Server struct {
	cfg      atomic.Pointer[config.Config]
	logger   *zap.SugaredLogger
	geocoder *geocode.Client
	engine   *horoscope.Engine
	db       *sql.DB // usage accounting, may be nil

	httpServer *http.Server
	mux        *http.ServeMux

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a server from configuration. An unreachable AI provider
// is not fatal: readings degrade to the local fallback.
func New(cfg *config.Config, db *sql.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	if db != nil {
		if err := tracker.EnsureSchema(db); err != nil {
			logger.Warnw("Failed to ensure usage schema, tracking disabled", "error", err)
			db = nil
		}
	}

	aiClient, err := provider.NewAIClient(cfg, provider.Options{
		Logger:        logger.Logger,
		DB:            db,
		OperationType: "horoscope",
		EntityType:    "chart",
	})
	if err != nil {
		logger.Warnw("No AI provider available, readings use the local fallback", "error", err)
		aiClient = nil
	} else {
		logger.Infow("AI provider ready", "model", aiClient.ModelName())
	}

	s := &Server{
		logger:   logger.Logger,
		geocoder: geocode.NewClient(cfg.Geocoder),
		engine:   horoscope.NewEngine(aiClient, cfg.Reading),
		db:       db,
		mux:      http.NewServeMux(),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.cfg.Store(cfg)
	s.setupRoutes()
	return s
}

// config returns the current configuration snapshot
func (s *Server) config() *config.Config {
	return s.cfg.Load()
}

// UpdateConfig swaps in a reloaded configuration. Request handlers pick
// it up on their next config() read; listener-level settings (port)
// need a restart.
func (s *Server) UpdateConfig(cfg *config.Config) error {
	s.cfg.Store(cfg)
	s.logger.Infow("Configuration updated",
		"chart_style", cfg.GetChartStyle(),
		"allowed_origins", cfg.GetServerAllowedOrigins(),
	)
	return nil
}

// Start listens on the requested port, falling back to the alternate
// port when the primary is taken. Blocks until the listener closes.
func (s *Server) Start(port int) error {
	listener, actualPort, err := listenWithFallback(port)
	if err != nil {
		return errors.Wrap(err, "failed to bind server port")
	}

	if actualPort != port {
		s.logger.Infow("Port in use, using fallback",
			"requested_port", port,
			"actual_port", actualPort,
		)
	}

	s.httpServer = &http.Server{
		Handler:      s.mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	s.logger.Infow("Server ready",
		"url", fmt.Sprintf("http://localhost:%d", actualPort),
		"port", actualPort,
	)

	if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// listenWithFallback tries the requested port first, then the fixed
// fallback port.
func listenWithFallback(port int) (net.Listener, int, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err == nil {
		return listener, port, nil
	}
	if port == config.FallbackServerPort {
		return nil, 0, err
	}

	fallback, ferr := net.Listen("tcp", fmt.Sprintf(":%d", config.FallbackServerPort))
	if ferr != nil {
		return nil, 0, errors.Wrapf(err, "ports %d and %d both unavailable", port, config.FallbackServerPort)
	}
	return fallback, config.FallbackServerPort, nil
}

// Stop gracefully shuts down the server and waits for in-flight
// requests and goroutines.
func (s *Server) Stop() error {
	s.logger.Infow("Initiating server shutdown")

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Warnw("HTTP shutdown did not complete cleanly", "error", err)
		}
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infow("All goroutines stopped cleanly")
	case <-time.After(ShutdownTimeout):
		s.logger.Warnw("Goroutine shutdown timed out, forcing exit",
			"timeout", ShutdownTimeout,
		)
	}

	s.logger.Infow("Server shutdown complete")
	return nil
}
