package writerepo

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/domain/booking"
	"pitchbook/internal/infra"
	"pitchbook/internal/infra/db"
	"pitchbook/internal/pkg/errs"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(q db.DBTX) *BookingRepository {
	return &BookingRepository{db: q}
}

const createBookingQuery = `
INSERT INTO bookings (
    id, user_id, pitch_id, offering_id, booking_date,
    duration_hours, final_price, voucher_id, note, status
) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8, $9, $10)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	var note *string
	if !b.Note().IsEmpty() {
		s := b.Note().String()
		note = &s
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, createBookingQuery,
		b.ID(), b.UserID(), b.PitchID(), b.OfferingID(), b.Date().Value(),
		b.DurationHours().String(), b.FinalPrice().String(),
		b.VoucherID(), note, b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, db.WrapError(err)
	}
	return id, nil
}

const transitionBookingQuery = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1 AND status = 'pending'`

const bookingExistsQuery = `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`

func (r *BookingRepository) TransitionFromPending(ctx context.Context, id uuid.UUID, to booking.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, transitionBookingQuery, id, to.String())
	if err != nil {
		return false, db.WrapError(err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, bookingExistsQuery, id).Scan(&exists); err != nil {
		return false, db.WrapError(err)
	}
	if !exists {
		return false, infra.NewNotFound(errs.New("booking not found"))
	}
	return false, nil
}
