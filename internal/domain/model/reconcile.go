package model

import "time"

// ReconcileOp names a deferred account-balance mutation.
type ReconcileOp string

const (
	ReconcileOpApply  ReconcileOp = "apply"
	ReconcileOpRemove ReconcileOp = "remove"
)

// ReconcileJob is a queued retry of a balance update that failed during
// checkout, cancellation, or delivery.
type ReconcileJob struct {
	ID        int64
	UserID    int64
	OrderID   int64
	Op        ReconcileOp
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}
