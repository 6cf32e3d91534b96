package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/routematch"
	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/internal/tracing"
	"github.com/vango-dev/routematch/pkg/router"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route table over HTTP",
		Long: `Start an HTTP server that resolves requests against the route table.

Every matched request is answered with a JSON document naming the route
and its captures. Unmatched requests get 404.

Endpoints:
  /metrics               Prometheus metrics (when metrics are enabled)
  /debug/resolve?url=U   resolve U without dispatching it
  /*                     the route table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, slog.Default())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, or "+config.DefaultAddr+")")

	return cmd
}

// serve runs the HTTP server until ctx is done.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tracing.SetupLogging(logger)
	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return errors.New("E122").
			WithDetail("Failed to set up tracing: " + err.Error()).
			Wrap(err)
	}
	if tp != nil {
		otel.SetTracerProvider(tp)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown failed", slog.Any("error", err))
			}
		}()
	}

	r, err := newRouter(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newServeMux(r, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr), slog.Int("routes", len(r.Routes())))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter builds the router for cfg with every route answered by
// echoHandler.
func newRouter(cfg *config.Config, logger *slog.Logger) (*router.Router, error) {
	r, err := routematch.FromConfig(cfg, router.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	for _, route := range r.Routes() {
		if err := r.Handle(route.Name, http.HandlerFunc(echoHandler)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// newServeMux mounts r on a chi mux next to the metrics and debug
// endpoints.
func newServeMux(r *router.Router, cfg *config.Config) http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Logger)
	mux.Use(chimw.Recoverer)

	if cfg.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	mux.Get("/debug/resolve", func(w http.ResponseWriter, req *http.Request) {
		url := req.URL.Query().Get("url")
		if url == "" {
			http.Error(w, "missing url parameter", http.StatusBadRequest)
			return
		}
		result, ok := r.Resolve(req.Context(), url)
		if !ok {
			writeJSON(w, http.StatusNotFound, resolveOutput{URL: url})
			return
		}
		writeJSON(w, http.StatusOK, resolveOutput{
			URL:      url,
			Route:    result.Route.Name,
			Captures: result.Captures.Entries(),
		})
	})

	mux.Handle("/*", r)

	if cfg.Tracing.Enabled {
		return otelhttp.NewHandler(mux, "routematch.serve")
	}
	return mux
}

// echoHandler answers with the match stored in the request context.
func echoHandler(w http.ResponseWriter, req *http.Request) {
	result, ok := router.MatchFromContext(req.Context())
	if !ok {
		http.NotFound(w, req)
		return
	}
	writeJSON(w, http.StatusOK, resolveOutput{
		URL:      result.URL,
		Route:    result.Route.Name,
		Captures: result.Captures.Entries(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
