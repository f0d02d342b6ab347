package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/api/middleware"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/catalog"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/config"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/domain/srs"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/events"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/postgres"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/auth"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/curriculum"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/eligibility"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/exercise"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/service/session"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/task"
)

// services are the collaborators the router needs. Tests build it from mocks.
type services struct {
	jwt            auth.JWTService
	users          middleware.UserEnsurer
	sessionService session.Service
	catalogService catalog.Service
}

// application holds the process-wide dependencies.
type application struct {
	services
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB
	queue  *task.TaskQueue
	pool   *task.WorkerPool
}

// newApplication connects to the database and wires every service.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	queue := task.NewTaskQueue(cfg.Events.QueueSize, logger)
	pool := task.NewWorkerPool(queue, task.WorkerPoolConfig{
		WorkerCount: cfg.Events.Workers,
		TaskTimeout: cfg.Events.HandlerTimeout,
	}, logger)

	svc, err := wireServices(cfg, db, queue, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	pool.Start()

	return &application{
		services: svc,
		config:   cfg,
		logger:   logger,
		db:       db,
		queue:    queue,
		pool:     pool,
	}, nil
}

func wireServices(cfg *config.Config, db *sqlx.DB, queue task.TaskQueueWriter, logger *slog.Logger) (services, error) {
	tx := postgres.NewTransactor(db, logger)
	repos := postgres.NewRepositories(db, logger)

	srsService, err := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		P1:               cfg.Schedule.P1,
		P2:               cfg.Schedule.P2,
		P3:               cfg.Schedule.P3,
		P4:               cfg.Schedule.P4,
		P5:               cfg.Schedule.P5,
		P6:               cfg.Schedule.P6,
		ReviewDisplay:    cfg.Schedule.ReviewDisplay,
		RemedialPractice: cfg.Schedule.RemedialPractice,
	}))
	if err != nil {
		return services{}, fmt.Errorf("failed to create SRS service: %w", err)
	}

	gate, err := eligibility.NewGate(eligibility.LimitsFromConfig(cfg.Learning), logger)
	if err != nil {
		return services{}, fmt.Errorf("failed to create eligibility gate: %w", err)
	}

	options, err := exercise.NewGenerator(cfg.Learning.OptionsCount, nil)
	if err != nil {
		return services{}, fmt.Errorf("failed to create option generator: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewEventTaskHandler(events.NewLoggingHandler(logger), queue, logger))

	sessionService, err := session.NewService(session.Dependencies{
		Transactor: tx,
		SRS:        srsService,
		Gate:       gate,
		Traversal:  curriculum.NewTraversal(logger),
		Options:    options,
		Emitter:    emitter,
		Config:     session.ConfigFromLearning(cfg.Learning),
		Logger:     logger,
	})
	if err != nil {
		return services{}, fmt.Errorf("failed to create session service: %w", err)
	}

	catalogService, err := catalog.NewService(tx, nil, logger)
	if err != nil {
		return services{}, fmt.Errorf("failed to create catalog service: %w", err)
	}

	userService, err := service.NewUserService(repos.Users, nil, logger)
	if err != nil {
		return services{}, fmt.Errorf("failed to create user service: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return services{}, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return services{
		jwt:            jwtService,
		users:          userService,
		sessionService: sessionService,
		catalogService: catalogService,
	}, nil
}

// cleanup drains pending event deliveries, then closes the database.
func (app *application) cleanup() {
	if app.queue != nil {
		app.queue.Close()
		ctx, cancel := context.WithTimeout(context.Background(), app.config.Events.ShutdownTimeout)
		if err := app.pool.Shutdown(ctx); err != nil {
			app.logger.Warn("abandoned pending event deliveries", slog.String("error", err.Error()))
		}
		cancel()
	}
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("database connection closed")
}
