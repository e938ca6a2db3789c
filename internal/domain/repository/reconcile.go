package repository

import (
	"context"

	"github.com/cartcloud/backend/internal/domain/model"
)

// ReconcileRepository is the retry queue for balance updates that failed
// during checkout, cancellation, or delivery.
type ReconcileRepository interface {
	Enqueue(ctx context.Context, userID, orderID int64, op model.ReconcileOp) error
	// SelectBatch locks and returns up to limit pending jobs, oldest first.
	SelectBatch(ctx context.Context, limit int) ([]model.ReconcileJob, error)
	Complete(ctx context.Context, jobID int64) error
	Fail(ctx context.Context, jobID int64, cause string) error
}
