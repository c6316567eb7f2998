// Command api serves the customer-intelligence dashboard as a JSON HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
	"github.com/novaretail/customer-intelligence/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			// Schema failures get their own message: the file was readable
			// but its headers cannot serve the dashboard.
			logger.Error("dataset schema mismatch",
				"missing_fields", schemaErr.Missing,
				"dataset_columns", schemaErr.Headers,
				"suggestions", schemaErr.Suggestions)
		} else {
			logger.Error("failed to initialize", "error", err)
		}
		os.Exit(1)
	}

	mux := http.NewServeMux()
	deps.DashboardHandler.Register(mux)

	limiter := rate.NewLimiter(
		rate.Limit(cfg.Server.RateLimitPerSecond),
		cfg.Server.RateLimitBurst,
	)
	var root http.Handler = rateLimit(limiter, mux)
	root = cors.Default().Handler(root)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// rateLimit rejects requests beyond the configured global rate.
func rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
