package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"tapto-backend/internal/domain"
	jobrepo "tapto-backend/internal/repository/job"
)

type stubJobs struct {
	due       []jobrepo.Job
	dueErr    error
	claimErrs map[string]error
	claimed   []string
}

func (s *stubJobs) Due(_ context.Context, _ time.Time, _ int) ([]jobrepo.Job, error) {
	return s.due, s.dueErr
}

func (s *stubJobs) MarkExecuted(_ context.Context, id string, _ time.Time) error {
	if err := s.claimErrs[id]; err != nil {
		return err
	}
	s.claimed = append(s.claimed, id)
	return nil
}

type stubOrders struct {
	confirmed  []string
	confirmErr error
	advanced   int
}

func (s *stubOrders) ConfirmPending(_ context.Context, orderID string) error {
	s.confirmed = append(s.confirmed, orderID)
	return s.confirmErr
}

func (s *stubOrders) AdvanceDeliveries(_ context.Context) {
	s.advanced++
}

func newTestWorker(jobs *stubJobs, orders *stubOrders) *Worker {
	return New(jobs, orders, time.Second, log.New(io.Discard, "", 0))
}

func TestTickExecutesDueConfirmJobs(t *testing.T) {
	jobs := &stubJobs{due: []jobrepo.Job{
		{ID: "job-1", OrderID: "order-1", Kind: jobrepo.KindConfirmOrder},
		{ID: "job-2", OrderID: "order-2", Kind: jobrepo.KindConfirmOrder},
	}}
	orders := &stubOrders{}
	w := newTestWorker(jobs, orders)

	w.Tick(context.Background())

	if len(orders.confirmed) != 2 || orders.confirmed[0] != "order-1" {
		t.Fatalf("expected both orders confirmed, got %v", orders.confirmed)
	}
	if len(jobs.claimed) != 2 {
		t.Fatalf("expected both jobs claimed, got %v", jobs.claimed)
	}
}

func TestTickSkipsJobsClaimedElsewhere(t *testing.T) {
	jobs := &stubJobs{
		due:       []jobrepo.Job{{ID: "job-1", OrderID: "order-1", Kind: jobrepo.KindConfirmOrder}},
		claimErrs: map[string]error{"job-1": domain.ErrNotFound},
	}
	orders := &stubOrders{}
	w := newTestWorker(jobs, orders)

	w.Tick(context.Background())

	if len(orders.confirmed) != 0 {
		t.Fatalf("expected no execution for a lost claim, got %v", orders.confirmed)
	}
}

func TestTickSwallowsExecutionFailures(t *testing.T) {
	jobs := &stubJobs{due: []jobrepo.Job{{ID: "job-1", OrderID: "order-1", Kind: jobrepo.KindConfirmOrder}}}
	orders := &stubOrders{confirmErr: errors.New("db down")}
	w := newTestWorker(jobs, orders)

	// Must not panic or propagate; the contract is fire-and-forget.
	w.Tick(context.Background())

	if len(jobs.claimed) != 1 {
		t.Fatalf("expected job still claimed, got %v", jobs.claimed)
	}
}

func TestTickAdvancesDeliveries(t *testing.T) {
	orders := &stubOrders{}
	w := newTestWorker(&stubJobs{}, orders)

	w.Tick(context.Background())
	w.Tick(context.Background())

	if orders.advanced != 2 {
		t.Fatalf("expected one advance per tick, got %d", orders.advanced)
	}
}

func TestTickIgnoresUnknownJobKinds(t *testing.T) {
	jobs := &stubJobs{due: []jobrepo.Job{{ID: "job-1", OrderID: "order-1", Kind: "mystery"}}}
	orders := &stubOrders{}
	w := newTestWorker(jobs, orders)

	w.Tick(context.Background())

	if len(orders.confirmed) != 0 {
		t.Fatalf("expected no confirmation for unknown kind, got %v", orders.confirmed)
	}
}
