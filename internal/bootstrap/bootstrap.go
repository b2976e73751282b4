package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/kirillkom/talentoplus/internal/config"
	"github.com/kirillkom/talentoplus/internal/core/ports"
	"github.com/kirillkom/talentoplus/internal/core/usecase"
	"github.com/kirillkom/talentoplus/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/talentoplus/internal/infrastructure/queue/nats"
	"github.com/kirillkom/talentoplus/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/talentoplus/internal/infrastructure/resilience"
	"github.com/kirillkom/talentoplus/internal/infrastructure/spreadsheet/xlsx"
	"github.com/kirillkom/talentoplus/internal/infrastructure/storage/localfs"
)

// App holds the wired use cases shared by the api and worker binaries.
type App struct {
	Config config.Config
	Logger *zap.Logger

	Queue       ports.MessageQueue
	Departments ports.DepartmentReader

	Classifier  *usecase.FallbackClassifier
	AskUC       *usecase.AskUseCase
	DashboardUC *usecase.DashboardUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	ImportUC    *usecase.ImportEmployeesUseCase
	ProcessUC   *usecase.ProcessImportUseCase

	closeFn func()
}

// New connects to postgres and nats and wires the use cases. observer may be
// nil; the api passes its metrics so classifier outcomes are counted.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, observer usecase.ClassificationObserver) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		Executor: resilience.NewExecutor(resilience.DefaultConfig(), logger.Named("nats")),
		Logger:   logger.Named("nats"),
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	app := wire(cfg, logger, db, storage, queue, observer)
	app.closeFn = func() {
		queue.Close()
		_ = db.Close()
	}
	return app, nil
}

func wire(
	cfg config.Config,
	logger *zap.Logger,
	db *sql.DB,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	observer usecase.ClassificationObserver,
) *App {
	employees := postgres.NewEmployeeRepository(db)
	departments := postgres.NewDepartmentRepository(db)
	jobs := postgres.NewImportJobRepository(db)
	codec := xlsx.NewCodec()

	classifier := usecase.NewFallbackClassifier(
		newPrimaryClassifier(cfg, logger),
		usecase.NewHeuristicClassifier(),
		logger.Named("classifier"),
		observer,
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Queue:       queue,
		Departments: departments,

		Classifier:  classifier,
		AskUC:       usecase.NewAskUseCase(classifier, employees, logger.Named("ask")),
		DashboardUC: usecase.NewDashboardUseCase(employees),
		EmployeeUC:  usecase.NewEmployeeUseCase(employees, departments, codec),
		ImportUC:    usecase.NewImportEmployeesUseCase(jobs, storage, queue),
		ProcessUC:   usecase.NewProcessImportUseCase(jobs, storage, codec, employees, departments, logger.Named("import")),
	}
}

// newPrimaryClassifier returns nil when no AI endpoint is configured, so
// every question goes straight to the keyword rules.
func newPrimaryClassifier(cfg config.Config, logger *zap.Logger) ports.QueryClassifier {
	if !cfg.AIConfigured() {
		logger.Info("ai_classifier_disabled")
		return nil
	}
	executor := resilience.NewExecutor(resilience.SingleAttempt(cfg.AIBreakerEnabled), logger.Named("gemini"))
	return gemini.New(cfg.AIAPIURL, cfg.AIAPIKey, cfg.AITimeout, executor, logger.Named("gemini"))
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
