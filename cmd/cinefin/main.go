package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/cinefin/cinefin/internal/app"
	"github.com/cinefin/cinefin/internal/ledger/accounts"
	ledgerhttp "github.com/cinefin/cinefin/internal/ledger/http"
	"github.com/cinefin/cinefin/internal/ledger/journal"
	"github.com/cinefin/cinefin/internal/ledger/reports"
	"github.com/cinefin/cinefin/internal/observability"
	"github.com/cinefin/cinefin/internal/platform/cache"
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	epoch, err := cfg.Epoch()
	if err != nil {
		logger.Error("parse ledger epoch", slog.Any("error", err))
		os.Exit(1)
	}

	accountService := accounts.NewService(accounts.NewRepository(pool))
	journalService := journal.NewService(journal.NewRepository(pool), journal.AccountDefaults{
		Cash:          cfg.CashAccount,
		Bank:          cfg.BankAccount,
		TicketRevenue: cfg.TicketRevenueAccount,
	})
	reportService := reports.NewService(reports.NewRepository(pool), reports.Config{
		Epoch:                   epoch,
		RetainedEarningsAccount: cfg.RetainedEarningsAccount,
		EquityRootAccount:       cfg.EquityRootAccount,
	})

	metrics := observability.NewMetrics()
	reportCache := ledgerhttp.NewReportCache(redisClient, cfg.ReportCacheTTL)
	ledgerHandler := ledgerhttp.NewHandler(logger, accountService, journalService, reportService, reportCache, metrics)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		Pool:          pool,
		LedgerHandler: ledgerHandler,
		JobHandler:    jobHandler,
		Metrics:       metrics,
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
