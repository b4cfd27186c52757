package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/usecase/queries"
)

type PitchReadStore struct {
	db db.DBTX
}

func NewPitchReadStore(q db.DBTX) *PitchReadStore {
	return &PitchReadStore{db: q}
}

const pitchViewQuery = `
SELECT p.id, p.facility_id, f.name, p.name, pt.name,
       p.base_price_per_hour::text, p.is_available, p.created_at
FROM pitches p
LEFT JOIN facilities f ON f.id = p.facility_id
JOIN pitch_types pt ON pt.id = p.pitch_type_id`

const pitchListQuery = pitchViewQuery + `
ORDER BY p.name`

const pitchByIDQuery = pitchViewQuery + `
WHERE p.id = $1`

func (r *PitchReadStore) FindAll(ctx context.Context) ([]*queries.PitchView, error) {
	rows, err := r.db.Query(ctx, pitchListQuery)
	if err != nil {
		return nil, db.WrapError(err)
	}
	defer rows.Close()

	var views []*queries.PitchView
	for rows.Next() {
		view, err := scanPitchView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err)
	}
	return views, nil
}

func (r *PitchReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PitchView, error) {
	return scanPitchView(r.db.QueryRow(ctx, pitchByIDQuery, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPitchView(row rowScanner) (*queries.PitchView, error) {
	var (
		view     queries.PitchView
		priceStr string
	)
	err := row.Scan(
		&view.ID, &view.FacilityID, &view.FacilityName, &view.Name,
		&view.PitchType, &priceStr, &view.IsAvailable, &view.CreatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	price, err := parseDecimal(priceStr)
	if err != nil {
		return nil, err
	}
	view.BasePricePerHour = price
	return &view, nil
}

const offeringsForDateQuery = `
SELECT po.id, ts.id, ts.name,
       to_char(ts.start_time, 'HH24:MI'), to_char(ts.end_time, 'HH24:MI'),
       p.base_price_per_hour::text,
       EXISTS (
           SELECT 1 FROM bookings b
           WHERE b.offering_id = po.id AND b.booking_date = $2
             AND b.status IN ('pending', 'confirmed')
       )
FROM pitch_offerings po
JOIN time_slots ts ON ts.id = po.slot_id
JOIN pitches p ON p.id = po.pitch_id
WHERE po.pitch_id = $1 AND po.is_available AND ts.is_active
ORDER BY ts.start_time`

func (r *PitchReadStore) FindOfferingsForDate(ctx context.Context, pitchID uuid.UUID, date time.Time) ([]*queries.OfferingRow, error) {
	rows, err := r.db.Query(ctx, offeringsForDateQuery, pitchID, date)
	if err != nil {
		return nil, db.WrapError(err)
	}
	defer rows.Close()

	var result []*queries.OfferingRow
	for rows.Next() {
		var (
			row      queries.OfferingRow
			priceStr string
		)
		err := rows.Scan(
			&row.OfferingID, &row.SlotID, &row.SlotName,
			&row.StartTime, &row.EndTime, &priceStr, &row.HasActiveBooking,
		)
		if err != nil {
			return nil, db.WrapError(err)
		}
		price, err := parseDecimal(priceStr)
		if err != nil {
			return nil, err
		}
		row.BasePricePerHour = price
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err)
	}
	return result, nil
}
