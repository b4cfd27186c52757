package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotPending    = errors.New("booking is not pending")
	ErrNegativePrice = errors.New("final price cannot be negative")
	ErrZeroDuration  = errors.New("booking duration must be positive")
)

// Booking is one user's claim on a pitch offering for a calendar date.
// Duration and final price are derived once at creation and never recomputed,
// so historical bookings keep the price that was in force when they were made.
type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	pitchID       uuid.UUID
	offeringID    uuid.UUID
	date          BookingDate
	durationHours decimal.Decimal
	finalPrice    decimal.Decimal
	voucherID     *uuid.UUID
	note          Note
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

func newBooking(
	userID, pitchID, offeringID uuid.UUID,
	date BookingDate,
	durationHours, finalPrice decimal.Decimal,
	voucherID *uuid.UUID,
	note Note,
) (*Booking, error) {
	if !durationHours.IsPositive() {
		return nil, ErrZeroDuration
	}
	if finalPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		pitchID:       pitchID,
		offeringID:    offeringID,
		date:          date,
		durationHours: durationHours,
		finalPrice:    finalPrice,
		voucherID:     voucherID,
		note:          note,
		status:        StatusPending,
	}, nil
}

func ReconstructBooking(
	id, userID, pitchID, offeringID uuid.UUID,
	date BookingDate,
	durationHours, finalPrice decimal.Decimal,
	voucherID *uuid.UUID,
	note Note,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		pitchID:       pitchID,
		offeringID:    offeringID,
		date:          date,
		durationHours: durationHours,
		finalPrice:    finalPrice,
		voucherID:     voucherID,
		note:          note,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) UserID() uuid.UUID              { return b.userID }
func (b *Booking) PitchID() uuid.UUID             { return b.pitchID }
func (b *Booking) OfferingID() uuid.UUID          { return b.offeringID }
func (b *Booking) Date() BookingDate              { return b.date }
func (b *Booking) DurationHours() decimal.Decimal { return b.durationHours }
func (b *Booking) FinalPrice() decimal.Decimal    { return b.finalPrice }
func (b *Booking) VoucherID() *uuid.UUID          { return b.voucherID }
func (b *Booking) Note() Note                     { return b.note }
func (b *Booking) Status() Status                 { return b.status }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// Confirm moves a pending booking to confirmed. The caller is responsible for
// redeeming the attached voucher in the same transaction.
func (b *Booking) Confirm() error {
	return b.transition(StatusConfirmed)
}

func (b *Booking) Reject() error {
	return b.transition(StatusRejected)
}

func (b *Booking) Cancel() error {
	return b.transition(StatusCancelled)
}

// transition guards the single legal edge: pending → terminal.
func (b *Booking) transition(to Status) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = to
	return nil
}
