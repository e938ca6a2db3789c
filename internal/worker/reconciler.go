package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// BalanceFacade exposes the subset of application functionality required by the worker.
type BalanceFacade interface {
	BalanceJobs(ctx context.Context, limit int) ([]model.ReconcileJob, error)
	ApplyBalanceJob(ctx context.Context, job model.ReconcileJob) error
	CompleteBalanceJob(ctx context.Context, jobID int64) error
	FailBalanceJob(ctx context.Context, jobID int64, cause string) error
}

// Reconciler drains the balance retry queue concurrently: balance updates
// that failed during checkout, cancellation or delivery are re-applied here.
type Reconciler struct {
	facade       BalanceFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.ReconcileJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	inflightMu sync.Mutex
	inflight   map[int64]struct{}
}

// NewReconciler constructs the balance reconciler worker pool.
func NewReconciler(facade BalanceFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.ReconcileJob, batchSize*workers),
		inflight:     make(map[int64]struct{}),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	jobs, err := r.facade.BalanceJobs(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch balance jobs failed", slog.String("error", err.Error()))
		return
	}
	for _, job := range jobs {
		// A job still buffered or mid-apply must not be dispatched again:
		// balance credits are not idempotent, and the queue view can lag
		// behind completion by a poll tick.
		if !r.markInflight(job.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			r.clearInflight(job.ID)
			return
		case r.jobs <- job:
		}
	}
}

func (r *Reconciler) markInflight(jobID int64) bool {
	r.inflightMu.Lock()
	defer r.inflightMu.Unlock()
	if _, busy := r.inflight[jobID]; busy {
		return false
	}
	r.inflight[jobID] = struct{}{}
	return true
}

func (r *Reconciler) clearInflight(jobID int64) {
	r.inflightMu.Lock()
	delete(r.inflight, jobID)
	r.inflightMu.Unlock()
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleJob(ctx, job)
		}
	}
}

func (r *Reconciler) handleJob(ctx context.Context, job model.ReconcileJob) {
	defer r.clearInflight(job.ID)

	if err := r.facade.ApplyBalanceJob(ctx, job); err != nil {
		r.logger.Error("balance job failed",
			slog.Int64("job_id", job.ID),
			slog.Int64("order_id", job.OrderID),
			slog.String("op", string(job.Op)),
			slog.String("error", err.Error()),
		)
		if failErr := r.facade.FailBalanceJob(ctx, job.ID, err.Error()); failErr != nil {
			r.logger.Error("mark balance job failed errored", slog.Int64("job_id", job.ID), slog.String("error", failErr.Error()))
		}
		return
	}

	if err := r.facade.CompleteBalanceJob(ctx, job.ID); err != nil {
		r.logger.Error("complete balance job failed", slog.Int64("job_id", job.ID), slog.String("error", err.Error()))
		return
	}
	r.logger.Info("balance job reconciled",
		slog.Int64("order_id", job.OrderID),
		slog.String("op", string(job.Op)),
	)
}
