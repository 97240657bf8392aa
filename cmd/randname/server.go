package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	slogchi "github.com/samber/slog-chi"

	"github.com/CTAG07/randname/pkg/markov"
)

// shutdownTimeout bounds how long in-flight requests get after a shutdown
// signal.
const shutdownTimeout = 10 * time.Second

// Server serves words generated from a single trained table.
type Server struct {
	config   *Config
	logger   *slog.Logger
	wordsAPI *WordsAPI
	router   chi.Router
}

// NewServer creates the router and registers every API route on it.
func NewServer(config *Config, table *markov.Table, logger *slog.Logger) *Server {
	s := &Server{
		config:   config,
		logger:   logger,
		wordsAPI: NewWordsAPI(table, config, logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(slogchi.New(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(config.Server.RequestTimeoutSec) * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.wordsAPI.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.wordsAPI.RegisterRoutes(r)

	s.router = r
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting word server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("word server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping word server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("word server shutdown failed: %w", err)
	}
	s.logger.Info("Word server stopped.")
	return nil
}
