// ABOUTME: HTTP API router for the dashboard, records, and metric evaluation.
// ABOUTME: Uses gorilla/mux routes wrapped in gorilla/handlers logging and CORS.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/harperreed/vitral/internal/dashboard"
)

const shutdownTimeout = 5 * time.Second

// Server serves the JSON API for one user's dashboard.
type Server struct {
	svc    *dashboard.Service
	logger *log.Logger
}

// NewServer creates an API server backed by svc.
func NewServer(svc *dashboard.Service) *Server {
	logger := svc.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{svc: svc, logger: logger.WithPrefix("api")}
}

// Router returns the bare route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/records", s.handleRecords).Methods(http.MethodGet)
	r.HandleFunc("/api/metrics/{key}/evaluate", s.handleEvaluate).Methods(http.MethodGet)

	return r
}

// Handler returns the router wrapped with access logging to accessLog and CORS.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedOrigins([]string{"*"}),
	)
	return handlers.LoggingHandler(accessLog, cors(s.Router()))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, accessLog io.Writer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(accessLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
