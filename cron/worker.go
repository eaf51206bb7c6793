package cron

import (
	"context"
	"log"
	"time"

	"bookable/config"
	bkRepo "bookable/database/repository/booking"
	bizRepo "bookable/database/repository/business"
	"bookable/models"
	"bookable/services/schedule"
	"bookable/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeTimeRefresh = "timerecord:refresh"

// refreshInterval is how often a full refresh pass is enqueued. DST rule
// changes are rare, so daily is plenty.
const refreshInterval = 24 * time.Hour

// InitRefreshWorker runs the async worker that re-resolves stale
// TimeRecords on unavailability windows and future bookings, and starts a
// ticker that enqueues one refresh pass per interval.
func InitRefreshWorker(normalizer *schedule.Normalizer, businesses bizRepo.Repository, bookings bkRepo.Repository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRefreshQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTimeRefresh, handleRefreshTask(normalizer, businesses, bookings))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[RefreshWorker] failed to start worker: %v", err)
		}
	}()

	go enqueueLoop(redisOpts)
}

func enqueueLoop(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		if _, err := client.Enqueue(asynq.NewTask(TypeTimeRefresh, nil)); err != nil {
			log.Printf("[RefreshWorker] enqueue failed: %v", err)
		}
		<-ticker.C
	}
}

func handleRefreshTask(normalizer *schedule.Normalizer, businesses bizRepo.Repository, bookings bkRepo.Repository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		ids, err := businesses.ListIDs(ctx)
		if err != nil {
			logger.Warn("refresh: could not list businesses", zap.Error(err))
			return err
		}

		for _, id := range ids {
			biz, err := businesses.GetByID(ctx, id)
			if err != nil {
				logger.Warn("refresh: business fetch failed", zap.String("businessID", id), zap.Error(err))
				continue
			}
			before := recordsStamp(biz)
			normalizer.RefreshWindows(ctx, biz.Unavailability, logger)
			if recordsStamp(biz) != before {
				if err := businesses.Update(ctx, biz); err != nil {
					logger.Warn("refresh: business update failed", zap.String("businessID", id), zap.Error(err))
				}
			}
		}

		upcoming, err := bookings.FindUpcoming(ctx, time.Now().Unix())
		if err != nil {
			logger.Warn("refresh: could not list upcoming bookings", zap.Error(err))
			return err
		}
		for i := range upcoming {
			bk := &upcoming[i]
			changedStart, errS := normalizer.Refresh(ctx, &bk.Start)
			changedEnd, errE := normalizer.Refresh(ctx, &bk.End)
			if errS != nil || errE != nil {
				logger.Warn("refresh: booking re-resolution failed", zap.String("bookingID", bk.ID))
				continue
			}
			if changedStart || changedEnd {
				if err := bookings.Update(ctx, bk); err != nil {
					logger.Warn("refresh: booking update failed", zap.String("bookingID", bk.ID), zap.Error(err))
				}
			}
		}

		logger.Info("time record refresh pass complete",
			zap.Int("businesses", len(ids)), zap.Int("bookings", len(upcoming)))
		return nil
	}
}

// recordsStamp sums a business's window resolution watermarks so the
// handler only writes back when something was refreshed.
func recordsStamp(biz *models.Business) int64 {
	var sum int64
	for _, w := range biz.Unavailability {
		sum += w.Start.LastResolved + w.End.LastResolved
	}
	return sum
}
