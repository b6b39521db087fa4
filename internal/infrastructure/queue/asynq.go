// Package queue runs background maintenance off the request path.
// Today that is one job: purging stored upload images past their
// retention age.
package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/Pratham9108106876/farm/internal/pkg/config"
	"github.com/hibiken/asynq"
)

// TaskTypeUploadCleanup removes stored images older than the retention
// window.
const TaskTypeUploadCleanup = "uploads:cleanup"

// UploadCleaner is the storage surface the cleanup task drives.
type UploadCleaner interface {
	CleanupOldFiles(ctx context.Context, olderThan time.Duration) error
}

// CleanupWorker schedules and processes the periodic upload cleanup
// task.
type CleanupWorker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	cleaner   UploadCleaner
	maxAge    time.Duration
	logger    *slog.Logger
}

// NewCleanupWorker creates a worker that purges uploads older than
// cfg.UploadMaxAgeH every hour.
func NewCleanupWorker(cfg *config.Config, cleaner UploadCleaner, logger *slog.Logger) *CleanupWorker {
	redisOpt := asynq.RedisClientOpt{
		Addr:         cfg.GetRedisURL(),
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 1,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task processing failed",
					slog.String("task_type", task.Type()),
					slog.Any("error", err))
			}),
			ShutdownTimeout: 10 * time.Second,
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: nil,
	})

	w := &CleanupWorker{
		server:    server,
		scheduler: scheduler,
		mux:       asynq.NewServeMux(),
		cleaner:   cleaner,
		maxAge:    time.Duration(cfg.UploadMaxAgeH) * time.Hour,
		logger:    logger,
	}
	w.mux.HandleFunc(TaskTypeUploadCleanup, w.handleCleanup)

	return w
}

// Start registers the hourly schedule and begins processing. It blocks
// until Shutdown is called.
func (w *CleanupWorker) Start() error {
	if _, err := w.scheduler.Register("@every 1h", asynq.NewTask(TaskTypeUploadCleanup, nil)); err != nil {
		return err
	}

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.logger.Error("cleanup scheduler stopped",
				slog.Any("error", err))
		}
	}()

	w.logger.Info("upload cleanup worker started",
		slog.Duration("max_age", w.maxAge))

	return w.server.Run(w.mux)
}

// Shutdown stops the scheduler and drains the worker.
func (w *CleanupWorker) Shutdown() {
	w.logger.Info("shutting down cleanup worker")
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *CleanupWorker) handleCleanup(ctx context.Context, task *asynq.Task) error {
	w.logger.Info("running upload cleanup",
		slog.Duration("max_age", w.maxAge))
	return w.cleaner.CleanupOldFiles(ctx, w.maxAge)
}
