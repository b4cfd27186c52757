package writerepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(q db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: q}
}

const reapExpiredKeyQuery = `
DELETE FROM idempotency_keys WHERE key = $1 AND expires_at <= now()`

const insertKeyQuery = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'in_progress', $5)`

// TryInsert claims the key. An expired row under the same key is reaped first
// so clients may reuse keys after the TTL. A live duplicate surfaces as
// KindDuplicateKey.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	if _, err := r.db.Exec(ctx, reapExpiredKeyQuery, key); err != nil {
		return db.WrapError(err)
	}
	if _, err := r.db.Exec(ctx, insertKeyQuery, key, userID, endpoint, requestHash, expiresAt); err != nil {
		return db.WrapError(err)
	}
	return nil
}

const completeKeyQuery = `
UPDATE idempotency_keys
SET status = 'completed', response_hash = $3, result_booking_id = $4, updated_at = now()
WHERE key = $1 AND user_id = $2`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseHash string, bookingID uuid.UUID) error {
	_, err := r.db.Exec(ctx, completeKeyQuery, key, userID, responseHash, bookingID)
	if err != nil {
		return db.WrapError(err)
	}
	return nil
}
