// Package scheduler runs the durable deferred work: delayed order
// confirmations stored as rows and the courier-position simulation tick.
package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"tapto-backend/internal/domain"
	jobrepo "tapto-backend/internal/repository/job"
)

const claimBatch = 50

// Worker polls the job table and advances the delivery simulation on a fixed
// interval. Job execution is fire-and-forget: failures are logged, never
// retried or surfaced.
type Worker struct {
	jobs     jobsRepo
	orders   orderExecutor
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

type jobsRepo interface {
	Due(ctx context.Context, now time.Time, limit int) ([]jobrepo.Job, error)
	MarkExecuted(ctx context.Context, id string, at time.Time) error
}

type orderExecutor interface {
	ConfirmPending(ctx context.Context, orderID string) error
	AdvanceDeliveries(ctx context.Context)
}

func New(jobs jobsRepo, orders orderExecutor, interval time.Duration, logger *log.Logger) *Worker {
	return &Worker{
		jobs:     jobs,
		orders:   orders,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run ticks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one scheduling pass: execute due jobs, then advance couriers.
func (w *Worker) Tick(ctx context.Context) {
	w.runDueJobs(ctx)
	w.orders.AdvanceDeliveries(ctx)
}

func (w *Worker) runDueJobs(ctx context.Context) {
	due, err := w.jobs.Due(ctx, w.now(), claimBatch)
	if err != nil {
		w.logger.Printf("scheduler: list due jobs err=%v", err)
		return
	}
	for _, job := range due {
		// Claim before executing; a concurrent worker losing the claim
		// skips the job instead of running it twice.
		if err := w.jobs.MarkExecuted(ctx, job.ID, w.now()); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				w.logger.Printf("scheduler: claim job=%s err=%v", job.ID, err)
			}
			continue
		}
		w.execute(ctx, job)
	}
}

func (w *Worker) execute(ctx context.Context, job jobrepo.Job) {
	switch job.Kind {
	case jobrepo.KindConfirmOrder:
		if err := w.orders.ConfirmPending(ctx, job.OrderID); err != nil {
			w.logger.Printf("scheduler: confirm order=%s err=%v", job.OrderID, err)
		}
	default:
		w.logger.Printf("scheduler: unknown job kind=%q id=%s", job.Kind, job.ID)
	}
}
