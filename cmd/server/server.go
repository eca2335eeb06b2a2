package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 15 * time.Minute
)

// startHTTPServer serves router until ctx is canceled or SIGINT/SIGTERM
// arrives, then shuts down gracefully and runs cleanup.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("server failed", "error", err)
			serveErr <- err
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("shutting down server")
	case <-serverCtx.Done():
		app.logger.Info("server context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		app.cleanup()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.cleanup()

	select {
	case err := <-serveErr:
		return err
	default:
	}
	app.logger.Info("server shutdown completed")
	return nil
}

// sweepIdleSessions deletes sessions idle for longer than the configured
// number of hours until ctx is done.
func (app *application) sweepIdleSessions(ctx context.Context) {
	idle := time.Duration(app.config.Server.SessionIdleHours) * time.Hour
	if idle <= 0 {
		return
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.sweepOnce(ctx, now.Add(-idle))
		}
	}
}

func (app *application) sweepOnce(ctx context.Context, cutoff time.Time) {
	n, err := app.sessions.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		app.logger.Error("failed to delete idle sessions", "error", err)
		return
	}
	if n > 0 {
		app.logger.Info("deleted idle sessions", "count", n, "cutoff", cutoff)
	}
}
