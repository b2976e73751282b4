package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/bootstrap"
	"github.com/kirillkom/talentoplus/internal/config"
	"github.com/kirillkom/talentoplus/internal/observability/logging"
	"github.com/kirillkom/talentoplus/internal/observability/metrics"
)

const importTimeout = 5 * time.Minute

func main() {
	cfg := config.Load()
	logger := logging.New("worker", cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger, nil)
	if err != nil {
		logger.Fatal("bootstrap_failed", zap.Error(err))
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", zap.String("subject", cfg.NATSSubject))
	err = app.Queue.SubscribeImportRequested(ctx, func(handlerCtx context.Context, jobID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, importTimeout)
		defer cancel()

		if job, err := app.ImportUC.GetByID(processCtx, jobID); err == nil {
			workerMetrics.ObserveQueueLag(time.Since(job.CreatedAt))
		}

		workerMetrics.StartImport()
		started := time.Now()
		err := app.ProcessUC.ProcessByID(processCtx, jobID)

		rows := 0
		if job, getErr := app.ImportUC.GetByID(processCtx, jobID); getErr == nil {
			rows = job.Rows
		}
		workerMetrics.FinishImport(time.Since(started), rows, err)
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("worker_subscribe_failed", zap.Error(err))
	}
}
