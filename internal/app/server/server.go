// Package server runs the mock backend as a standalone HTTP service so a
// portal started with a live data source can talk to it.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/datasource"
	"hrportal/internal/mockbackend"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/transport/http/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the service's handler: probes and metrics next to the
// mock API.
func NewRouter(cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	backend, err := mockbackend.New(mockbackend.Options{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		AuthRate:       cfg.AuthRate,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Latency:        datasource.Jitter(cfg.MockLatency),
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	collector := metrics.New(cfg.MetricsNamespace + "_mock")

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("/metrics", collector.Handler())
	router.With(middleware.Metrics(collector)).Handle("/api/*", backend.Handler())
	return router, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	router, err := NewRouter(cfg, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.MockAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock backend listening", "addr", cfg.MockAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
