package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
)

func (r *reconcileRepository) Enqueue(ctx context.Context, userID, orderID int64, op model.ReconcileOp) error {
	const query = `INSERT INTO balance_jobs (user_id, order_id, op) VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, userID, orderID, string(op))
	return err
}

// SelectBatch claims jobs before the locking transaction commits: the row
// locks are gone once the batch is returned, so a job must be invisible to
// the next poll while a worker still holds it. Balance credits are not
// idempotent; a re-dispatched job would double-apply. Claims older than a
// minute are treated as abandoned and become eligible again.
func (r *reconcileRepository) SelectBatch(ctx context.Context, limit int) ([]model.ReconcileJob, error) {
	const query = `SELECT id, user_id, order_id, op, attempts, last_error, created_at, updated_at
                   FROM balance_jobs
                   WHERE claimed_at IS NULL OR claimed_at < NOW() - INTERVAL '1 minute'
                   ORDER BY created_at
                   LIMIT $1
                   FOR UPDATE SKIP LOCKED`

	var jobs []model.ReconcileJob
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				job model.ReconcileJob
				op  string
			)
			if err := rows.Scan(&job.ID, &job.UserID, &job.OrderID, &op, &job.Attempts, &job.LastError, &job.CreatedAt, &job.UpdatedAt); err != nil {
				return err
			}
			job.Op = model.ReconcileOp(op)
			jobs = append(jobs, job)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, job := range jobs {
			if _, err := tx.Exec(ctx, `UPDATE balance_jobs SET claimed_at=NOW(), updated_at=NOW() WHERE id=$1`, job.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *reconcileRepository) Complete(ctx context.Context, jobID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM balance_jobs WHERE id=$1`, jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Fail releases the claim so the job is retried on a later poll.
func (r *reconcileRepository) Fail(ctx context.Context, jobID int64, cause string) error {
	const query = `UPDATE balance_jobs SET attempts = attempts + 1, last_error=$2, claimed_at=NULL, updated_at=NOW() WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, jobID, cause)
	return err
}
