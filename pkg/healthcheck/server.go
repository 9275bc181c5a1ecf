// Package healthcheck provides a minimal HTTP health check server.
package healthcheck

import (
	"context"
	"net/http"
	"time"
)

// Header names carrying the roster status.
const (
	HeaderSource   = "X-Roster-Source"
	HeaderAdvisory = "X-Roster-Advisory"
)

// StatusFunc reports the current roster source label and advisory level.
type StatusFunc func() (source, advisory string)

// Server is a minimal HTTP server for health checks.
type Server struct {
	server *http.Server
}

// New creates a new lightweight health check server. status may be nil.
func New(addr string, status StatusFunc) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           Handler(status),
			ReadTimeout:       2 * time.Second,
			WriteTimeout:      2 * time.Second,
			IdleTimeout:       30 * time.Second,
			ReadHeaderTimeout: 1 * time.Second,
			MaxHeaderBytes:    1 << 10, // 1KB
		},
	}
}

// Handler serves "/" and "/health".
func Handler(status StatusFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if status != nil {
			source, advisory := status()
			if source != "" {
				w.Header().Set(HeaderSource, source)
			}
			if advisory != "" {
				w.Header().Set(HeaderAdvisory, advisory)
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}

// Start starts the health check server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
