package writerepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/notifier"
)

// NotificationRepository is the outbox: jobs are inserted inside the booking
// transaction and delivered later by the dispatcher, so delivery failures can
// never roll back a state change.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(q db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: q}
}

const enqueueNotificationQuery = `
INSERT INTO notification_jobs (id, kind, payload, run_at, status)
VALUES ($1, $2, $3, $4, 'pending')`

func (r *NotificationRepository) Enqueue(ctx context.Context, kind string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, enqueueNotificationQuery, uuid.New(), kind, payload, runAt)
	if err != nil {
		return db.WrapError(err)
	}
	return nil
}

// ClaimDue locks a batch of runnable jobs and marks them processing. SKIP
// LOCKED keeps concurrent dispatchers from fighting over the same rows.
const claimDueQuery = `
UPDATE notification_jobs
SET status = 'processing', updated_at = now()
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE status = 'pending' AND run_at <= $1
    ORDER BY run_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, payload, attempts`

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]notifier.Job, error) {
	rows, err := r.db.Query(ctx, claimDueQuery, now, limit)
	if err != nil {
		return nil, db.WrapError(err)
	}
	defer rows.Close()

	var jobs []notifier.Job
	for rows.Next() {
		var j notifier.Job
		if err := rows.Scan(&j.ID, &j.Kind, &j.Payload, &j.Attempts); err != nil {
			return nil, db.WrapError(err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err)
	}
	return jobs, nil
}

const markDoneQuery = `
UPDATE notification_jobs
SET status = 'done', updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, markDoneQuery, id)
	if err != nil {
		return db.WrapError(err)
	}
	return nil
}

const markFailedQuery = `
UPDATE notification_jobs
SET status = 'pending', attempts = attempts + 1, last_error = $2,
    run_at = $3, updated_at = now()
WHERE id = $1`

const markDeadQuery = `
UPDATE notification_jobs
SET status = 'dead', attempts = attempts + 1, last_error = $2, updated_at = now()
WHERE id = $1`

// MarkFailed reschedules the job, or parks it as dead once attempts run out.
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int32, maxAttempts int32, errMsg string, nextRun time.Time) error {
	var err error
	if attempts+1 >= maxAttempts {
		_, err = r.db.Exec(ctx, markDeadQuery, id, errMsg)
	} else {
		_, err = r.db.Exec(ctx, markFailedQuery, id, errMsg, nextRun)
	}
	if err != nil {
		return db.WrapError(err)
	}
	return nil
}
