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

	httpadapter "github.com/kirillkom/talentoplus/internal/adapters/http"
	"github.com/kirillkom/talentoplus/internal/bootstrap"
	"github.com/kirillkom/talentoplus/internal/config"
	"github.com/kirillkom/talentoplus/internal/observability/logging"
	"github.com/kirillkom/talentoplus/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.New("api", cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	app, err := bootstrap.New(ctx, cfg, logger, httpMetrics)
	if err != nil {
		logger.Fatal("bootstrap_failed", zap.Error(err))
	}
	defer app.Close()

	router := httpadapter.NewRouter(cfg, httpadapter.Dependencies{
		Questions:   app.AskUC,
		Dashboard:   app.DashboardUC,
		Employees:   app.EmployeeUC,
		Departments: app.Departments,
		Imports:     app.ImportUC,
		ImportJobs:  app.ImportUC,
		Metrics:     httpMetrics,
		Logger:      logger.Named("http"),
	})
	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", zap.String("addr", server.Addr), zap.Bool("ai_classifier", cfg.AIConfigured()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("api_server_failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_failed", zap.Error(err))
	}
}
