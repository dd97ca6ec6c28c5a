package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/velora-studio/velora/internal/insights"
)

// InsightsWarmupJob precomputes the dashboard's default range so the first
// view of the day is served from cache.
type InsightsWarmupJob struct {
	Insights *insights.Service
	Logger   *slog.Logger
}

// NewInsightsWarmupJob wires dependencies for the warmup handler.
func NewInsightsWarmupJob(svc *insights.Service, logger *slog.Logger) *InsightsWarmupJob {
	return &InsightsWarmupJob{Insights: svc, Logger: logger}
}

// Handle processes warmup tasks.
func (j *InsightsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Insights == nil {
		return errors.New("insights warmup: handler not configured")
	}
	var payload InsightsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := time.Now()
	j.Logger.Info("starting insights warmup")

	if err := j.Insights.Warm(ctx); err != nil {
		j.Logger.Error("insights warmup failed", slog.Any("error", err))
		return err
	}

	j.Logger.Info("completed insights warmup", slog.Duration("duration", time.Since(start)))
	return nil
}
