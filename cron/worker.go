package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/sripavantejb/GuideXpert-Backend/config"
	"github.com/sripavantejb/GuideXpert-Backend/services/notify"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

const TypeNotificationSweep = "notification:sweep"

// sweepInterval is how often the in-process scheduler enqueues a sweep. The
// external cron endpoint stays available as a backstop.
const sweepInterval = "@every 5m"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitSweepWorker runs the background notification sweeper: an asynq server
// consuming sweep tasks, and a scheduler enqueueing one every few minutes.
// Overlapping runs are harmless because the sweep itself takes a Redis lock.
func InitSweepWorker(scheduler notify.Scheduler) {
	logger := utils.GetLogger()
	opts := redisOpts()

	srv := asynq.NewServer(opts, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationSweep, handleSweepTask(scheduler))

	go func() {
		logger.Info("starting sweep worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("sweep worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("sweep worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runPeriodicEnqueue(opts)
}

// runPeriodicEnqueue registers the recurring sweep task.
func runPeriodicEnqueue(opts asynq.RedisClientOpt) {
	logger := utils.GetLogger()

	sched := asynq.NewScheduler(opts, &asynq.SchedulerOpts{Location: utils.IST})
	task := asynq.NewTask(TypeNotificationSweep, nil)
	if _, err := sched.Register(sweepInterval, task); err != nil {
		logger.Error("failed to register periodic sweep", zap.Error(err))
		return
	}
	if err := sched.Run(); err != nil {
		logger.Error("sweep scheduler stopped", zap.Error(err))
	}
}

func handleSweepTask(scheduler notify.Scheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		stats, err := scheduler.Sweep(ctx)
		if err != nil {
			if err == notify.ErrSweepInProgress {
				logger.Info("sweep skipped, another run holds the lock")
				return nil
			}
			logger.Error("scheduled sweep failed", zap.Error(err))
			return err
		}

		for kind, s := range stats {
			if s.Found > 0 {
				logger.Info("scheduled sweep kind done",
					zap.String("kind", string(kind)),
					zap.Int("found", s.Found),
					zap.Int("sent", s.Sent),
					zap.Int("failed", s.Failed))
			}
		}
		return nil
	}
}
