package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/botcmd/pkg/adapters/http"
	"github.com/aretw0/botcmd/pkg/adapters/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds the graceful shutdown of the servers.
const ShutdownTimeout = 5 * time.Second

// NewHTTPHandler builds the HTTP API of app, including /metrics.
func NewHTTPHandler(app *App) http.Handler {
	return httpadapter.NewHandler(app.Dispatcher,
		httpadapter.WithLogger(app.Logger),
		httpadapter.WithMetricsHandler(promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})),
	)
}

// Serve runs the HTTP API on port until ctx is done.
func Serve(ctx context.Context, app *App, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewHTTPHandler(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP Server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		app.Logger.Info("Shutdown signal received, shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		return nil
	}
}

// Transports supported by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP exposes app as a Model Context Protocol server.
func ServeMCP(ctx context.Context, app *App, transport string, port int) error {
	srv := mcp.NewServer(app.Dispatcher, mcp.WithLogger(app.Logger))
	switch transport {
	case TransportStdio:
		app.Logger.Info("Starting MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		err := srv.ServeSSE(ctx, port)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
}
