package pitch

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNilSlot = errors.New("offering requires a time slot")

// Offering links a pitch to a catalog time slot. Its availability flag is a
// static offer ("this pitch rents this window at all"), not a per-date status;
// date-scoped availability additionally requires no active booking on the date.
type Offering struct {
	id          uuid.UUID
	pitchID     uuid.UUID
	slot        *TimeSlot
	isAvailable bool
}

func NewOffering(id, pitchID uuid.UUID, slot *TimeSlot, isAvailable bool) (*Offering, error) {
	if slot == nil {
		return nil, ErrNilSlot
	}
	return &Offering{
		id:          id,
		pitchID:     pitchID,
		slot:        slot,
		isAvailable: isAvailable,
	}, nil
}

func (o *Offering) ID() uuid.UUID      { return o.id }
func (o *Offering) PitchID() uuid.UUID { return o.pitchID }
func (o *Offering) Slot() *TimeSlot    { return o.slot }
func (o *Offering) IsAvailable() bool  { return o.isAvailable }

// Price is the undiscounted charge for this offering: the pitch's hourly base
// rate times the slot duration, rounded to 2 decimal places.
func (o *Offering) Price(basePricePerHour decimal.Decimal) decimal.Decimal {
	return basePricePerHour.Mul(o.slot.DurationHours()).Round(2)
}
