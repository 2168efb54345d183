package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the scorer as a JSON API:

  POST /analyze          score one resume (JSON or multipart upload)
  POST /analyze/stream   same, reporting progress as Server-Sent Events
  POST /rank             rank several resumes against one job description
  POST /gaps/role        role gap report and roadmap for a skill list
  GET  /roles            role templates
  GET  /health           liveness
  GET  /metrics          Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	a, err := newApp(ctx, metrics)
	if err != nil {
		return err
	}
	defer a.Close()

	port := a.cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	var limits *ratelimit.Config
	if a.cfg.RateLimit.Enabled {
		limits = ratelimit.NewConfig(true, a.cfg.RateLimit.RequestsPerMinute, a.cfg.RateLimit.Burst)
	}

	srv, err := server.New(a.pipeline, server.Config{
		Port:         port,
		MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
		RateLimit:    limits,
		Logger:       a.logger,
		Metrics:      metrics,
		Gatherer:     reg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
