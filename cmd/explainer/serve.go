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

	"word-explainer/internal/mcpserver"
	"word-explainer/internal/server"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	var (
		ping    bool
		withMCP bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the explain HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			exp, llmClient, err := newExplainer(ctx)
			if err != nil {
				return err
			}

			// Verify LLM connection
			if ping {
				if checker, ok := llmClient.(interface{ Ping(context.Context) error }); ok {
					if err := checker.Ping(ctx); err != nil {
						return fmt.Errorf("llm health check: %w", err)
					}
					slog.Info("llm health check passed", "backend", llmClient.Name())
				} else {
					slog.Warn("llm backend does not support health checks", "backend", llmClient.Name())
				}
			}

			srv := server.New(cfg, exp)
			if withMCP {
				mux := http.NewServeMux()
				mux.Handle("/mcp", mcpserver.HTTPHandler(mcpserver.New(exp, version)))
				mux.Handle("/", srv.Handler)
				srv.Handler = mux
			}

			return runServer(ctx, srv)
		},
	}

	cmd.Flags().BoolVar(&ping, "ping", false, "check the completion backend before serving")
	cmd.Flags().BoolVar(&withMCP, "mcp", false, "also serve the MCP endpoint at /mcp")
	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
