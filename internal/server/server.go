// Package server provides the HTTP REST API for the RFP pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasad/rfp-pilot/internal/jobs"
	"github.com/prasad/rfp-pilot/internal/pipeline"
	"github.com/prasad/rfp-pilot/internal/scanner"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	runner     *pipeline.Runner
	jobs       jobs.Store
	scanner    *scanner.Scanner
	now        func() time.Time
}

// Config holds server configuration.
type Config struct {
	Port    int
	Runner  *pipeline.Runner
	Jobs    jobs.Store
	Scanner *scanner.Scanner
}

// New creates a new server instance.
func New(cfg Config) *Server {
	s := &Server{
		runner:  cfg.Runner,
		jobs:    cfg.Jobs,
		scanner: cfg.Scanner,
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/rfp/upload", s.handleUpload)
	mux.HandleFunc("GET /api/v1/rfp/{id}/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/rfp/{id}/result", s.handleResult)
	mux.HandleFunc("POST /api/v1/sales/scan", s.handleScan)
	mux.HandleFunc("GET /api/v1/sales/opportunities", s.handleOpportunities)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("Received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// jsonResponse writes a JSON response with the given status code.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"detail": message})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
