package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
	testhelpers "github.com/cartcloud/backend/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestReconcilerDrainsQueue(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{Jobs: [][]model.ReconcileJob{
		{
			{ID: 1, UserID: 7, OrderID: 10, Op: model.ReconcileOpApply},
			{ID: 2, UserID: 7, OrderID: 11, Op: model.ReconcileOpRemove},
		},
	}}
	r := NewReconciler(facade, 10*time.Millisecond, 4, 2, discardLogger())

	r.Start(context.Background())
	waitFor(t, func() bool { return len(facade.CompletedJobs()) == 2 })
	r.Stop()

	if len(facade.AppliedJobs()) != 2 {
		t.Fatalf("expected 2 applied jobs, got %d", len(facade.AppliedJobs()))
	}
	if len(facade.FailedJobs()) != 0 {
		t.Fatalf("no job should fail, got %v", facade.FailedJobs())
	}
}

func TestReconcilerMarksFailedJobs(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Jobs: [][]model.ReconcileJob{{{ID: 3, UserID: 7, OrderID: 12, Op: model.ReconcileOpApply}}},
		ApplyFn: func(context.Context, model.ReconcileJob) error {
			return errors.New("ledger unavailable")
		},
	}
	r := NewReconciler(facade, 10*time.Millisecond, 4, 1, discardLogger())

	r.Start(context.Background())
	waitFor(t, func() bool { return len(facade.FailedJobs()) == 1 })
	r.Stop()

	if facade.FailedJobs()[0] != 3 {
		t.Fatalf("unexpected failed job id %v", facade.FailedJobs())
	}
	if len(facade.CompletedJobs()) != 0 {
		t.Fatalf("failed job must not complete, got %v", facade.CompletedJobs())
	}
}

func TestReconcilerAppliesJobOnceAcrossPollTicks(t *testing.T) {
	// The queue keeps listing a job until it is completed, so every poll
	// tick re-offers the same job while a worker still holds it.
	release := make(chan struct{})
	facade := &testhelpers.WorkerFacadeStub{
		JobsFn: func(context.Context, int) ([]model.ReconcileJob, error) {
			return []model.ReconcileJob{{ID: 1, UserID: 7, OrderID: 10, Op: model.ReconcileOpApply}}, nil
		},
		ApplyFn: func(context.Context, model.ReconcileJob) error {
			<-release
			return nil
		},
	}
	r := NewReconciler(facade, 10*time.Millisecond, 4, 2, discardLogger())

	r.Start(context.Background())
	waitFor(t, func() bool { return len(facade.AppliedJobs()) >= 1 })
	time.Sleep(100 * time.Millisecond)

	if applied := facade.AppliedJobs(); len(applied) != 1 {
		t.Fatalf("held job must be applied exactly once, got %d applications", len(applied))
	}

	close(release)
	r.Stop()
}

func TestReconcilerRetriesFailedJobOnLaterPoll(t *testing.T) {
	var attempts int32
	facade := &testhelpers.WorkerFacadeStub{
		JobsFn: func(context.Context, int) ([]model.ReconcileJob, error) {
			return []model.ReconcileJob{{ID: 5, UserID: 7, OrderID: 12, Op: model.ReconcileOpApply}}, nil
		},
		ApplyFn: func(context.Context, model.ReconcileJob) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return errors.New("ledger unavailable")
			}
			return nil
		},
	}
	r := NewReconciler(facade, 10*time.Millisecond, 4, 1, discardLogger())

	r.Start(context.Background())
	waitFor(t, func() bool { return len(facade.CompletedJobs()) >= 1 })
	r.Stop()

	if len(facade.FailedJobs()) != 1 || facade.FailedJobs()[0] != 5 {
		t.Fatalf("first attempt must be recorded as failed, got %v", facade.FailedJobs())
	}
}

func TestReconcilerStopIsIdempotentWithoutJobs(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{}
	r := NewReconciler(facade, 5*time.Millisecond, 1, 1, discardLogger())

	r.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	if len(facade.AppliedJobs()) != 0 {
		t.Fatalf("no jobs expected, got %v", facade.AppliedJobs())
	}
}
