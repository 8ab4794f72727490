package worker

import (
	"context"
	"time"

	"github.com/heritage-explorer/internal/domain"
	"go.uber.org/zap"
)

// StatisticsSource перечитывает сводные счётчики у backend
type StatisticsSource interface {
	RefreshStatistics(ctx context.Context) (*domain.Statistics, error)
}

// StatsRefresher периодически обновляет кэш статистики главного экрана
type StatsRefresher struct {
	*BaseWorker
	source   StatisticsSource
	interval time.Duration
}

// NewStatsRefresher создает новый StatsRefresher
func NewStatsRefresher(source StatisticsSource, interval time.Duration, logger *zap.Logger) *StatsRefresher {
	return &StatsRefresher{
		BaseWorker: NewBaseWorker("stats-refresher", logger),
		source:     source,
		interval:   interval,
	}
}

// Start запускает воркер
func (w *StatsRefresher) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting stats refresher", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatsRefresher) refresh(ctx context.Context) {
	stats, err := w.source.RefreshStatistics(ctx)
	if err != nil {
		// в кэше остаётся прошлое значение
		w.Logger().Warn("Failed to refresh statistics", zap.Error(err))
		return
	}
	w.Logger().Debug("Statistics refreshed", zap.Int("total", stats.Total))
}
