// SPDX-License-Identifier: Apache-2.0

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

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idmatch/idmatch-mcp/internal/metrics"
	"github.com/idmatch/idmatch-mcp/internal/tool"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	svc, err := newService("", metrics.New(reg))
	if err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "idmatch", Version: version}, nil)
	tool.New(svc).Register(server)

	addr := httpAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}
	if addr == "" {
		logger.Info("serving MCP over stdio", zap.String("policy", svc.Policy().Name()))
		return server.Run(ctx, &mcp.StdioTransport{})
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(server, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over HTTP", zap.String("addr", addr), zap.String("policy", svc.Policy().Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter mounts the MCP endpoint next to metrics and health checks.
func newRouter(server *mcp.Server, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	r.Handle("/mcp", mcpHandler)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}
