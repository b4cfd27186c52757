package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/domain/booking"
)

type UnitOfWork interface {
	// Within runs fn in a read-committed transaction with retry on
	// serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads gives pool-backed command reads for validation outside transactions.
	Reads() CommandReads
	// Idempotency gives the pool-backed repository used to claim a key before
	// the booking transaction starts.
	Idempotency() IdempotencyRepository
}

type Tx interface {
	Bookings() BookingRepository
	Vouchers() VoucherRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
	Users() UserRepository
	Reads() CommandReads
}

type CommandReads interface {
	PitchByID(ctx context.Context, id uuid.UUID) (*PitchSnapshot, error)
	OfferingByID(ctx context.Context, id uuid.UUID) (*OfferingSnapshot, error)
	VoucherByCode(ctx context.Context, code string) (*VoucherSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	HasActiveBooking(ctx context.Context, offeringID uuid.UUID, date time.Time) (bool, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	// Create persists a new pending booking. A conflict with the partial
	// unique index over active (offering, date) pairs surfaces as KindConflict.
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// TransitionFromPending performs the conditional status update; it reports
	// false when the row exists but is no longer pending.
	TransitionFromPending(ctx context.Context, id uuid.UUID, to booking.Status) (bool, error)
}

type VoucherRepository interface {
	// Redeem increments used_count by one iff the voucher is still active,
	// inside its validity window and under its usage cap. KindConflict when
	// the cap is already reached, KindNotFound for an unknown id.
	Redeem(ctx context.Context, voucherID uuid.UUID, asOf time.Time) error
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, kind string, payload []byte, runAt time.Time) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, responseHash string, bookingID uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
