package pitch

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyPitchName   = errors.New("pitch name must not be empty")
	ErrNegativeRate     = errors.New("base price per hour cannot be negative")
	ErrOfferingMismatch = errors.New("offering does not belong to this pitch")
)

// Pitch is a bookable field. Pricing is a flat hourly base rate; the
// chargeable price of any slot derives from it and never lives on the slot.
type Pitch struct {
	id               uuid.UUID
	facilityID       *uuid.UUID
	name             string
	basePricePerHour decimal.Decimal
	isAvailable      bool
}

func NewPitch(id uuid.UUID, facilityID *uuid.UUID, name string, basePricePerHour decimal.Decimal, isAvailable bool) (*Pitch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPitchName
	}
	if basePricePerHour.IsNegative() {
		return nil, ErrNegativeRate
	}
	return &Pitch{
		id:               id,
		facilityID:       facilityID,
		name:             name,
		basePricePerHour: basePricePerHour,
		isAvailable:      isAvailable,
	}, nil
}

func (p *Pitch) ID() uuid.UUID                     { return p.id }
func (p *Pitch) FacilityID() *uuid.UUID            { return p.facilityID }
func (p *Pitch) Name() string                      { return p.name }
func (p *Pitch) BasePricePerHour() decimal.Decimal { return p.basePricePerHour }
func (p *Pitch) IsAvailable() bool                 { return p.isAvailable }

// Owns reports whether the offering is one of this pitch's offerings.
func (p *Pitch) Owns(o *Offering) bool {
	return o != nil && o.pitchID == p.id
}
