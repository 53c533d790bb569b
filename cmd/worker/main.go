package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/cinefin/cinefin/internal/app"
	"github.com/cinefin/cinefin/internal/ledger/reports"
	"github.com/cinefin/cinefin/internal/observability"
	"github.com/cinefin/cinefin/internal/platform/db"
	"github.com/cinefin/cinefin/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	epoch, err := cfg.Epoch()
	if err != nil {
		logger.Error("parse ledger epoch", slog.Any("error", err))
		os.Exit(1)
	}

	reportService := reports.NewService(reports.NewRepository(pool), reports.Config{
		Epoch:                   epoch,
		RetainedEarningsAccount: cfg.RetainedEarningsAccount,
		EquityRootAccount:       cfg.EquityRootAccount,
	})
	metrics := observability.NewMetrics()
	checker := jobs.NewIntegrityChecker(reportService, epoch, metrics, logger)

	integrityTask, err := jobs.NewLedgerIntegrityTask(jobs.LedgerIntegrityPayload{})
	if err != nil {
		logger.Error("build integrity task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLedgerIntegrity, Handler: checker.HandleLedgerIntegrityTask},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 2 * * *", Task: integrityTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
