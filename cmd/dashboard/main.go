package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/air-quality-dashboard/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/air-quality-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/air-quality-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/air-quality-dashboard/internal/config"
	"github.com/couchcryptid/air-quality-dashboard/internal/dashboard"
	"github.com/couchcryptid/air-quality-dashboard/internal/observability"
	"github.com/couchcryptid/air-quality-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// All five files must load before anything is served.
	start := time.Now()
	ds, err := csvfile.NewLoader(cfg.DataDir, cfg.DuplicatePolicy, logger).Load(ctx)
	if err != nil {
		logger.Error("failed to load dataset", "data_dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	for _, loc := range ds.Locations() {
		t, _ := ds.Table(loc)
		metrics.DatasetRows.WithLabelValues(string(loc)).Set(float64(t.Len()))
	}
	logger.Info("dataset loaded", "rows", ds.Rows(), "duration", time.Since(start))

	svc := dashboard.NewService(ds, logger, metrics, dashboard.Options{
		CacheSize:   cfg.ReportCacheSize,
		PreviewRows: cfg.PreviewRows,
	})
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, metrics, logger)

	// Start HTTP server.
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the monthly summary feed (feature-flagged via SUMMARY_FEED_ENABLED).
	var writer *kafkaadapter.Writer
	if cfg.SummaryFeedEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(pipeline.NewDatasetSource(ds), writer, logger, metrics, cfg.SummaryBatchSize)
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("summary feed error", "error", err)
			}
		}()
	} else {
		logger.Info("summary feed disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
