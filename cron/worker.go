package cron

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"availcal/config"
	availabilityRepo "availcal/database/repository/availability"
	"availcal/services/calendar"
	"availcal/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitSaveWorker runs the availability save worker in background and returns
// a shutdown func.
func InitSaveWorker(repo availabilityRepo.AvailabilityRepository, calendarSvc calendar.CalendarService, logger *zap.Logger) func() {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: config.AppConfig.SaveWorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSaveAvailability, HandleSaveTask(repo, calendarSvc, logger))

	ctx, cancel := context.WithCancel(context.Background())
	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("save worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("save worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					log.Fatal("save worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // linear backoff
			} else {
				break
			}
		}
	}()

	return func() {
		cancel()
		srv.Shutdown()
	}
}

// SaveTaskHandler persists queued saves and reports the outcome to the session.
// Failures are only reported once the task has no retries left.
type SaveTaskHandler struct {
	Repo     availabilityRepo.AvailabilityRepository
	Calendar calendar.CalendarService
	Logger   *zap.Logger

	// FinalAttempt reports whether a failure should be reported instead of retried.
	FinalAttempt func(ctx context.Context) bool
}

// HandleSaveTask returns the asynq handler for save tasks.
func HandleSaveTask(repo availabilityRepo.AvailabilityRepository, calendarSvc calendar.CalendarService, logger *zap.Logger) asynq.HandlerFunc {
	h := &SaveTaskHandler{Repo: repo, Calendar: calendarSvc, Logger: logger, FinalAttempt: finalAttempt}
	return h.ProcessTask
}

func (h *SaveTaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	req, err := tasks.ParseSaveAvailabilityTask(task)
	if err != nil {
		h.Logger.Error("invalid save payload", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	saveErr := h.Repo.ReplaceForOwner(ctx, req.OwnerID, req.Window, req.Ranges)
	if saveErr != nil && !h.FinalAttempt(ctx) {
		h.Logger.Warn("availability save failed, will retry", zap.String("sessionID", req.SessionID), zap.Error(saveErr))
		return saveErr
	}

	if err := h.Calendar.CompleteSave(ctx, req.SessionID, saveErr); err != nil {
		// The session may have expired while the save was queued.
		h.Logger.Warn("could not report save outcome", zap.String("sessionID", req.SessionID), zap.Error(err))
	}
	if saveErr != nil {
		return fmt.Errorf("%v: %w", saveErr, asynq.SkipRetry)
	}
	return nil
}

func finalAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}

// monitorRedisConnection pings the queue Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("save queue redis connection lost", zap.Error(err))
			}
		}
	}
}
