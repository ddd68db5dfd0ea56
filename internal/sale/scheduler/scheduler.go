package scheduler

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/sale"
	"go.uber.org/zap"
)

// Scheduler recomputes the active sales on a fixed interval, off the read path.
type Scheduler struct {
	uc       sale.UseCase
	interval time.Duration
	logger   logger.ZapLogger
	trigger  chan struct{}
}

const DefaultInterval = time.Minute

// NewScheduler falls back to DefaultInterval when interval is not positive.
func NewScheduler(uc sale.UseCase, interval time.Duration, log logger.ZapLogger) *Scheduler {
	if interval <= 0 {
		log.Warn("Invalid sale refresh interval, using default",
			zap.Duration("interval", interval),
			zap.Duration("default", DefaultInterval),
		)
		interval = DefaultInterval
	}
	return &Scheduler{
		uc:       uc,
		interval: interval,
		logger:   log,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger asks for a refresh as soon as possible. Calls made while one is
// already pending are coalesced.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting sale refresh scheduler", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping sale refresh scheduler")
			return
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.trigger:
			s.refresh(ctx)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if err := s.uc.RefreshActiveSales(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("Failed to refresh active sales", zap.Error(err))
	}
}
