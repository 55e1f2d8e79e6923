package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/marine-bulletin-etl/internal/adapter/filestore"
	httpadapter "github.com/couchcryptid/marine-bulletin-etl/internal/adapter/http"
	"github.com/couchcryptid/marine-bulletin-etl/internal/adapter/meteofrance"
	"github.com/couchcryptid/marine-bulletin-etl/internal/config"
	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
	"github.com/couchcryptid/marine-bulletin-etl/internal/observability"
	"github.com/couchcryptid/marine-bulletin-etl/internal/pipeline"
)

func run(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	logger.Info("logger is initialised",
		"region", cfg.Region,
		"zone", cfg.Zone,
		"area", cfg.AreaName(),
		"want_bmr", cfg.WantBMR,
		"pretty", cfg.Pretty,
		"run_every", cfg.RunEvery,
		"schedule", cfg.Schedule,
	)

	client := meteofrance.NewClient(cfg, logger, metrics)
	renderer := pipeline.NewRenderer(cfg.Pretty, logger, metrics)
	writer := filestore.NewWriter(logger)

	p := pipeline.New(client, renderer, writer, pipeline.Settings{
		Zone: cfg.Zone,
		Area: cfg.AreaName(),
		OutputDirs: map[domain.ReportKind]string{
			domain.KindBMS: cfg.OutputDir(domain.KindBMS),
			domain.KindBMR: cfg.OutputDir(domain.KindBMR),
		},
		Schedule: cfg.CycleSchedule(),
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		select {
		case err = <-done:
		case <-shutdownCtx.Done():
			logger.Warn("cycle still running at shutdown deadline")
		}
	}
	if err != nil {
		logger.Error("pipeline error", "error", err)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}
