package job

import (
	"context"
	"time"
)

// Kind of scheduled work. Only order confirmation is scheduled today.
const KindConfirmOrder = "confirm_order"

// Job is one row of durable deferred work keyed by order id. Jobs survive
// process restarts because they are rows, not in-memory timers.
type Job struct {
	ID         string
	OrderID    string
	Kind       string
	RunAt      time.Time
	ExecutedAt *time.Time
	CreatedAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, orderID, kind string, runAt time.Time) (*Job, error)
	// Due returns unexecuted jobs whose run time has passed.
	Due(ctx context.Context, now time.Time, limit int) ([]Job, error)
	// MarkExecuted stamps the job done. Returns domain.ErrNotFound when the
	// job was already claimed, which callers treat as "someone else ran it".
	MarkExecuted(ctx context.Context, id string, at time.Time) error
}
