package workers

import (
	"context"
	"time"

	"organmatch_backend/internal/logger"
	"organmatch_backend/internal/repositories"
)

// ViabilityWorker expires donors whose explicit ischemia window has run
// out, so stale organs never reach a matching run.
type ViabilityWorker struct {
	donorRepo repositories.DonorRepository
	interval  time.Duration
}

func NewViabilityWorker(donorRepo repositories.DonorRepository, interval time.Duration) *ViabilityWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ViabilityWorker{
		donorRepo: donorRepo,
		interval:  interval,
	}
}

func (w *ViabilityWorker) Start(ctx context.Context) {
	go w.expireOverdueDonors(ctx)
}

func (w *ViabilityWorker) expireOverdueDonors(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// One pass at startup so a restart never leaves stale donors active
	// for a full interval.
	w.runOnce()

	for {
		select {
		case <-ctx.Done():
			logger.Info("viability worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *ViabilityWorker) runOnce() {
	expired, err := w.donorRepo.ExpireOverdue(time.Now())
	if err != nil {
		logger.WorkerLog("viability_worker", "expire_overdue", err)
		return
	}
	if expired > 0 {
		logger.With("expired", expired).Info("expired donors past preservation window")
	}
}
