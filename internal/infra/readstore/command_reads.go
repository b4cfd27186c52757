package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/usecase/shared"
)

// CommandReads serves the minimal snapshots commands validate against. It runs
// over either the pool or an open transaction.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(q db.DBTX) *CommandReads {
	return &CommandReads{db: q}
}

const pitchSnapshotQuery = `
SELECT id, facility_id, name, base_price_per_hour::text, is_available
FROM pitches
WHERE id = $1`

func (r *CommandReads) PitchByID(ctx context.Context, id uuid.UUID) (*shared.PitchSnapshot, error) {
	var (
		snap     shared.PitchSnapshot
		priceStr string
	)
	err := r.db.QueryRow(ctx, pitchSnapshotQuery, id).Scan(
		&snap.ID, &snap.FacilityID, &snap.Name, &priceStr, &snap.IsAvailable,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	price, err := parseDecimal(priceStr)
	if err != nil {
		return nil, err
	}
	snap.BasePricePerHour = price
	return &snap, nil
}

const offeringSnapshotQuery = `
SELECT po.id, po.pitch_id, ts.id, ts.name,
       to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
       ts.is_active, po.is_available
FROM pitch_offerings po
JOIN time_slots ts ON ts.id = po.slot_id
WHERE po.id = $1`

func (r *CommandReads) OfferingByID(ctx context.Context, id uuid.UUID) (*shared.OfferingSnapshot, error) {
	var snap shared.OfferingSnapshot
	err := r.db.QueryRow(ctx, offeringSnapshotQuery, id).Scan(
		&snap.ID, &snap.PitchID, &snap.SlotID, &snap.SlotName,
		&snap.StartTime, &snap.EndTime, &snap.SlotActive, &snap.IsAvailable,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	return &snap, nil
}

const voucherSnapshotQuery = `
SELECT id, code, discount_percent, min_order_value::text, usage_limit,
       used_count, start_date, end_date, is_active
FROM vouchers
WHERE code = $1`

func (r *CommandReads) VoucherByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error) {
	var (
		snap        shared.VoucherSnapshot
		minOrderStr *string
	)
	err := r.db.QueryRow(ctx, voucherSnapshotQuery, code).Scan(
		&snap.ID, &snap.Code, &snap.DiscountPercent, &minOrderStr,
		&snap.UsageLimit, &snap.UsedCount, &snap.StartDate, &snap.EndDate, &snap.IsActive,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	minOrder, err := parseDecimalPtr(minOrderStr)
	if err != nil {
		return nil, err
	}
	snap.MinOrderValue = minOrder
	return &snap, nil
}

const bookingSnapshotQuery = `
SELECT id, user_id, pitch_id, offering_id, booking_date, status, voucher_id
FROM bookings
WHERE id = $1`

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, bookingSnapshotQuery, id).Scan(
		&snap.ID, &snap.UserID, &snap.PitchID, &snap.OfferingID,
		&snap.BookingDate, &snap.Status, &snap.VoucherID,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	return &snap, nil
}

const hasActiveBookingQuery = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE offering_id = $1 AND booking_date = $2
      AND status IN ('pending', 'confirmed')
)`

func (r *CommandReads) HasActiveBooking(ctx context.Context, offeringID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, hasActiveBookingQuery, offeringID, date).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err)
	}
	return exists, nil
}

const idempotencyByKeyQuery = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, idempotencyByKeyQuery, key, userID).Scan(
		&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash,
		&rec.ResultBookingID, &rec.ExpiresAt,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	return &rec, nil
}
