// Package server exposes the interpreter's Prometheus metrics over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is where the metrics handler is mounted
const MetricsPath = "/metrics"

// MetricsServer serves a Prometheus gatherer on MetricsPath
type MetricsServer struct {
	srv      *http.Server
	listener net.Listener
	logger   util.Logger
}

// New creates a MetricsServer for addr (host:port) over gatherer
func New(addr string, gatherer prometheus.Gatherer) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: util.NewLogLogger("MetricsHandler", util.ErrorLevel),
	}))

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ErrorLog:          util.NewLogLogger("MetricsServer", util.ErrorLevel),
		},
		logger: util.GetLogger("MetricsServer"),
	}
}

// Handler returns the server's root handler
func (s *MetricsServer) Handler() http.Handler {
	return s.srv.Handler
}

// Listen binds the configured address. Addr reports the bound address
// afterwards, which matters for ":0".
func (s *MetricsServer) Listen() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address once listening, else the configured one
func (s *MetricsServer) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}

// Serve listens if needed and blocks until the server stops. A clean
// Shutdown returns nil.
func (s *MetricsServer) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.logger.Info().Str("addr", s.Addr()).Msg("Serving metrics")

	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *MetricsServer) ServeAsync() <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- s.Serve()
		close(done)
	}()

	return done
}

// Shutdown gracefully stops the server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
