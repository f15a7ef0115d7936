package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperdom/internal/preview"
	"github.com/vango-dev/hyperdom/pkg/metrics"
	"github.com/vango-dev/hyperdom/pkg/script"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve [script.js]",
		Short: "Serve a live preview of a script",
		Long: `Run a script and serve the element it returns.

The page follows every change to the tree over a WebSocket, so timers
and observables in the script update the browser as they fire.

Routes:
  /          live page
  /snapshot  current HTML fragment
  /ws        update stream
  /healthz   health check
  /metrics   Prometheus metrics

Examples:
  hyperdom serve app.js
  hyperdom serve app.js --port=8080
  hyperdom serve --host=0.0.0.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, a, a.scriptPath(args))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, a *app, path string) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(
		metrics.WithNamespace(a.cfg.Metrics.Namespace),
		metrics.WithRegistry(registry),
	)

	rt := script.New(
		script.WithLogger(a.logger.With("component", "script")),
		script.WithMetrics(recorder),
	)
	defer rt.Close()

	root, err := rt.RunFile(ctx, path)
	if err != nil {
		return err
	}

	srv, err := preview.New(ctx, rt, root, preview.Config{
		Title:       filepath.Base(path),
		MetricsPath: a.cfg.Server.MetricsPath,
		TracerName:  a.cfg.Server.TracerName,
		Gatherer:    registry,
		Logger:      a.logger.With("component", "preview"),
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	out := cmd.OutOrStdout()
	printBanner(out)
	fmt.Fprintln(out, "  serve")
	fmt.Fprintln(out)
	success(out, "Serving %s", path)
	info(out, "Preview:  %s/", a.cfg.URL())
	info(out, "Metrics:  %s%s", a.cfg.URL(), a.cfg.Server.MetricsPath)
	fmt.Fprintln(out)

	return srv.ListenAndServe(ctx, a.cfg.Address())
}
