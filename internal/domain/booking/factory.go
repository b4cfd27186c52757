package booking

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pitchbook/internal/domain/pitch"
	"pitchbook/internal/domain/voucher"
	"pitchbook/internal/pkg/clock"
)

// Quote is the priced outcome of a (pitch, offering, voucher) combination.
// DiscountApplied is false when no voucher was given, the voucher failed its
// validity predicate, or the base price missed the minimum order value.
type Quote struct {
	DurationHours   decimal.Decimal
	BasePrice       decimal.Decimal
	FinalPrice      decimal.Decimal
	DiscountApplied bool
}

type Factory struct {
	Clock          clock.Clock
	MaxAdvanceDays int
}

func NewFactory(c clock.Clock, maxAdvanceDays int) *Factory {
	return &Factory{
		Clock:          c,
		MaxAdvanceDays: maxAdvanceDays,
	}
}

// QuotePrice derives duration and final price. Pure except for reading the
// clock; it never touches the voucher's used count.
func (f *Factory) QuotePrice(p *pitch.Pitch, offering *pitch.Offering, v *voucher.Voucher) Quote {
	duration := offering.Slot().DurationHours()
	base := offering.Price(p.BasePricePerHour())

	q := Quote{
		DurationHours: duration,
		BasePrice:     base,
		FinalPrice:    base,
	}

	if v != nil && v.IsValidOn(clock.Today(f.Clock)) && v.MeetsMinOrder(base) {
		q.FinalPrice = v.Apply(base)
		q.DiscountApplied = true
	}

	return q
}

// CreateBooking validates the date and the pitch/offering relation, prices the
// combination and returns a pending booking carrying immutable derived values.
func (f *Factory) CreateBooking(
	userID uuid.UUID,
	p *pitch.Pitch,
	offering *pitch.Offering,
	date BookingDate,
	v *voucher.Voucher,
	note Note,
) (*Booking, error) {
	if !p.Owns(offering) {
		return nil, pitch.ErrOfferingMismatch
	}

	quote := f.QuotePrice(p, offering, v)

	var voucherID *uuid.UUID
	if v != nil && quote.DiscountApplied {
		id := v.ID()
		voucherID = &id
	}

	return newBooking(
		userID,
		p.ID(),
		offering.ID(),
		date,
		quote.DurationHours,
		quote.FinalPrice,
		voucherID,
		note,
	)
}
