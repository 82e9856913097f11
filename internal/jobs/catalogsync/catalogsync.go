package catalogsync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

type catalogRefresher interface {
	Refresh(ctx context.Context) ([]model.Package, error)
}

// Job keeps the catalog cache warm so package reads rarely pay a platform
// round trip.
type Job struct {
	catalog  catalogRefresher
	interval time.Duration
	logger   *zap.Logger
}

func New(catalog catalogRefresher, interval time.Duration, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		catalog:  catalog,
		interval: interval,
		logger:   logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.catalog == nil {
		return fmt.Errorf("catalog service is nil")
	}

	packages, err := j.catalog.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	j.logger.Info("catalog sync completed", zap.Int("packages", len(packages)))
	return nil
}

// Start runs the job on its interval until ctx is cancelled. Failures are
// logged and the next tick retries; a stale cache is still servable.
func (j *Job) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		j.logger.Warn("catalog sync failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("catalog sync failed", zap.Error(err))
			}
		}
	}
}
