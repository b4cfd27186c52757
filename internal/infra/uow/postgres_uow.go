package uow

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pitchbook/internal/infra"
	"pitchbook/internal/infra/db"
	"pitchbook/internal/infra/readstore"
	"pitchbook/internal/infra/writerepo"
	"pitchbook/internal/usecase/shared"
)

const (
	maxAttempts    = 3
	baseRetryDelay = 50 * time.Millisecond
)

// PostgresUnitOfWork runs command closures in a transaction over the shared
// pool, retrying on serialization failures and deadlocks.
type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay<<(attempt-1) + rand.N(baseRetryDelay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := u.runInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !db.IsRetryable(err) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (u *PostgresUnitOfWork) runInTx(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.Begin(ctx)
	if err != nil {
		return infra.NewDBFailure(err)
	}
	defer func() { _ = pgxTx.Rollback(ctx) }()

	if err := fn(ctx, &txContext{q: pgxTx}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return db.WrapError(err)
	}
	return nil
}

func (u *PostgresUnitOfWork) Reads() shared.CommandReads {
	return readstore.NewCommandReads(u.pool)
}

func (u *PostgresUnitOfWork) Idempotency() shared.IdempotencyRepository {
	return writerepo.NewIdempotencyRepository(u.pool)
}

// txContext hands out repositories bound to one open transaction.
type txContext struct {
	q pgx.Tx
}

func (t *txContext) Bookings() shared.BookingRepository {
	return writerepo.NewBookingRepository(t.q)
}

func (t *txContext) Vouchers() shared.VoucherRepository {
	return writerepo.NewVoucherRepository(t.q)
}

func (t *txContext) Notifications() shared.NotificationRepository {
	return writerepo.NewNotificationRepository(t.q)
}

func (t *txContext) Idempotency() shared.IdempotencyRepository {
	return writerepo.NewIdempotencyRepository(t.q)
}

func (t *txContext) Users() shared.UserRepository {
	return writerepo.NewUserRepository(t.q)
}

func (t *txContext) Reads() shared.CommandReads {
	return readstore.NewCommandReads(t.q)
}
