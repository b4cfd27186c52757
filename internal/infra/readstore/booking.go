package readstore

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/usecase/queries"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(q db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: q}
}

const bookingViewQuery = `
SELECT b.id, b.user_id, u.email, b.pitch_id, p.name, b.offering_id, ts.name,
       to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
       b.booking_date, b.duration_hours::text, b.final_price::text,
       b.voucher_id, v.code, b.note, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN pitches p ON p.id = b.pitch_id
JOIN pitch_offerings po ON po.id = b.offering_id
JOIN time_slots ts ON ts.id = po.slot_id
LEFT JOIN vouchers v ON v.id = b.voucher_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		durationStr string
		priceStr    string
	)
	err := r.db.QueryRow(ctx, bookingViewQuery, id).Scan(
		&view.ID, &view.UserID, &view.UserEmail, &view.PitchID, &view.PitchName,
		&view.OfferingID, &view.SlotName, &view.StartTime, &view.EndTime,
		&view.BookingDate, &durationStr, &priceStr,
		&view.VoucherID, &view.VoucherCode, &view.Note, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}

	duration, err := parseDecimal(durationStr)
	if err != nil {
		return nil, err
	}
	price, err := parseDecimal(priceStr)
	if err != nil {
		return nil, err
	}
	view.DurationHours = duration
	view.FinalPrice = price
	return &view, nil
}

const bookingListQuery = `
SELECT b.id, b.pitch_id, p.name, ts.name, b.booking_date,
       b.final_price::text, b.status, b.created_at
FROM bookings b
JOIN pitches p ON p.id = b.pitch_id
JOIN pitch_offerings po ON po.id = b.offering_id
JOIN time_slots ts ON ts.id = po.slot_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC
LIMIT $2`

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, bookingListQuery, userID, limit)
	if err != nil {
		return nil, db.WrapError(err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			priceStr string
		)
		err := rows.Scan(
			&item.ID, &item.PitchID, &item.PitchName, &item.SlotName,
			&item.BookingDate, &priceStr, &item.Status, &item.CreatedAt,
		)
		if err != nil {
			return nil, db.WrapError(err)
		}
		price, err := parseDecimal(priceStr)
		if err != nil {
			return nil, err
		}
		item.FinalPrice = price
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err)
	}
	return items, nil
}
