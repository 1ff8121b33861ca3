package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop/adapter/cli"
	"github.com/habitloop/habitloop/internal/app"
	"github.com/habitloop/habitloop/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development", ReportDefaultPeriod: "week"}
	}

	if cfg.LogLevel == "debug" || cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		logger.Error("invalid HABITLOOP_USER_ID", "error", err)
		os.Exit(1)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(&cli.App{
		HabitRepo:              container.HabitRepo,
		LogRepo:                container.LogRepo,
		GetPeriodReportHandler: container.GetPeriodReportHandler,
		ReportCache:            container.ReportCache,
		DefaultPeriod:          cfg.ReportDefaultPeriod,
		CurrentUserID:          userID,
	})

	cli.Execute(ctx)
}
