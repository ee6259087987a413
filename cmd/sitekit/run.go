package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/sitekit"
	"github.com/helixml/sitekit/application/service"
	"github.com/helixml/sitekit/internal/log"
	"github.com/helixml/sitekit/internal/metrics"
)

type runFunc func(ctx context.Context, client *sitekit.Client, logger *slog.Logger) error

// run opens a client for one command, times it and writes run metrics.
func run(cmd *cobra.Command, flags *globalFlags, name string, fn runFunc) (err error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if cfg.UsesDefaultDB() {
		if err := cfg.EnsureDataDir(); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	logger := log.NewLoggerWithWriter(cmd.ErrOrStderr(), cfg.LogFormat(), cfg.LogLevel()).Slog()
	ctx := log.StartRun(cmd.Context(), name)
	logger.DebugContext(ctx, "configuration loaded", attrs(cfg.LogAttrs())...)

	m := metrics.New()
	start := time.Now()
	defer func() {
		m.ObserveRun(name, time.Since(start))
		if werr := m.WriteTextfile(cfg.MetricsTextfile()); werr != nil {
			logger.WarnContext(ctx, "failed to write metrics", slog.String("path", cfg.MetricsTextfile()), slog.Any("error", werr))
		}
	}()

	client, err := sitekit.New(
		sitekit.WithConfig(cfg),
		sitekit.WithLogger(logger),
		sitekit.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("create sitekit client: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil && !errors.Is(cerr, sitekit.ErrClientClosed) {
			err = errors.Join(err, cerr)
		}
	}()

	return fn(ctx, client, logger)
}

// logReport writes the run summary line and one warning per failure.
func logReport(ctx context.Context, logger *slog.Logger, report service.Report) {
	for _, f := range report.Failures {
		logger.WarnContext(ctx, "record failed", slog.String("id", f.ID), slog.String("reason", f.Reason))
	}
	logger.InfoContext(ctx, "run complete", report.LogAttrs()...)
}

func attrs(in []slog.Attr) []any {
	out := make([]any, len(in))
	for i, a := range in {
		out[i] = a
	}
	return out
}
