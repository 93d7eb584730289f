package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"padelwatch/config"
	searchRequestRepo "padelwatch/database/repository/searchrequest"
	"padelwatch/services/orders"
	"padelwatch/services/tasks"
	"padelwatch/utils"
)

// fetchRecordRetention bounds how long fetch records stay around after
// their freshness-marker role has passed.
const fetchRecordRetention = 7 * 24 * time.Hour

// Scheduler drives the periodic search order sweep plus storage
// housekeeping. Ticks that overlap a still-running pass are skipped,
// never queued.
type Scheduler struct {
	c *cron.Cron
}

func NewScheduler(
	orderSvc orders.OrderService,
	taskSvc tasks.TaskService,
	requestRepo searchRequestRepo.SearchRequestRepository,
) (*Scheduler, error) {
	logger := utils.GetLogger()
	adapter := cronLogger{log: logger.Sugar()}

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(adapter),
		cron.Recover(adapter),
	))

	interval := config.AppConfig.OrderCheckIntervalMinutes
	if interval <= 0 {
		interval = 15
	}

	_, err := c.AddFunc(fmt.Sprintf("@every %dm", interval), func() {
		ctx := context.Background()

		orderSvc.CheckDueOrders(ctx)

		retention := time.Duration(config.AppConfig.TaskRetentionHours) * time.Hour
		if retention <= 0 {
			retention = 24 * time.Hour
		}
		if pruned := taskSvc.PruneOlderThan(retention); pruned > 0 {
			logger.Info("pruned finished search tasks", zap.Int("pruned", pruned))
		}

		cutoff := time.Now().UTC().Add(-fetchRecordRetention)
		if removed, err := requestRepo.DeleteOlderThan(ctx, cutoff); err != nil {
			logger.Error("failed to prune fetch records", zap.Error(err))
		} else if removed > 0 {
			logger.Info("pruned old fetch records", zap.Int64("removed", removed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register scheduler job: %w", err)
	}
	return &Scheduler{c: c}, nil
}

// Start begins ticking in the background.
func (s *Scheduler) Start() {
	utils.GetLogger().Info("order scheduler started",
		zap.Int("intervalMinutes", config.AppConfig.OrderCheckIntervalMinutes))
	s.c.Start()
}

// Stop halts scheduling. The returned context completes once a pass
// that is already running has finished.
func (s *Scheduler) Stop() context.Context {
	return s.c.Stop()
}

// cronLogger adapts the structured logger to the cron logging hooks.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
