//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dompitch "pitchbook/internal/domain/pitch"
	reqdto "pitchbook/internal/handler/dto/request"
	"pitchbook/internal/usecase/shared"
)

// BookingBuilder carries a consistent (pitch, slot, offering) trio plus the
// booking inputs derived from it. Defaults describe a 2-hour morning slot on
// a 100000/hour pitch.
type BookingBuilder struct {
	UserID           uuid.UUID
	PitchID          uuid.UUID
	FacilityID       *uuid.UUID
	PitchName        string
	BasePricePerHour decimal.Decimal
	PitchAvailable   bool

	OfferingID        uuid.UUID
	SlotID            uuid.UUID
	SlotName          string
	StartTime         string
	EndTime           string
	SlotActive        bool
	OfferingAvailable bool

	BookingDate time.Time
	VoucherCode *string
	Note        string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:            uuid.New(),
		PitchID:           uuid.New(),
		PitchName:         "Court A",
		BasePricePerHour:  decimal.NewFromInt(100000),
		PitchAvailable:    true,
		OfferingID:        uuid.New(),
		SlotID:            uuid.New(),
		SlotName:          "Morning",
		StartTime:         "07:00",
		EndTime:           "09:00",
		SlotActive:        true,
		OfferingAvailable: true,
		BookingDate:       time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildPitchDomain() (*dompitch.Pitch, error) {
	return dompitch.NewPitch(b.PitchID, b.FacilityID, b.PitchName, b.BasePricePerHour, b.PitchAvailable)
}

func (b *BookingBuilder) BuildOfferingDomain() (*dompitch.Offering, error) {
	start, err := dompitch.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := dompitch.ParseTimeOfDay(b.EndTime)
	if err != nil {
		return nil, err
	}
	slot, err := dompitch.NewTimeSlot(b.SlotID, b.SlotName, start, end, b.SlotActive)
	if err != nil {
		return nil, err
	}
	return dompitch.NewOffering(b.OfferingID, b.PitchID, slot, b.OfferingAvailable)
}

func (b *BookingBuilder) BuildPitchSnapshot() *shared.PitchSnapshot {
	return &shared.PitchSnapshot{
		ID:               b.PitchID,
		FacilityID:       b.FacilityID,
		Name:             b.PitchName,
		BasePricePerHour: b.BasePricePerHour,
		IsAvailable:      b.PitchAvailable,
	}
}

func (b *BookingBuilder) BuildOfferingSnapshot() *shared.OfferingSnapshot {
	return &shared.OfferingSnapshot{
		ID:          b.OfferingID,
		PitchID:     b.PitchID,
		SlotID:      b.SlotID,
		SlotName:    b.SlotName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		SlotActive:  b.SlotActive,
		IsAvailable: b.OfferingAvailable,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PitchID:     b.PitchID,
		OfferingID:  b.OfferingID,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		VoucherCode: b.VoucherCode,
		Note:        b.Note,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithBasePricePerHour(price decimal.Decimal) *BookingBuilder {
	b.BasePricePerHour = price
	return b
}

func (b *BookingBuilder) WithSlotTimes(start, end string) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithBookingDate(date time.Time) *BookingBuilder {
	b.BookingDate = date
	return b
}

func (b *BookingBuilder) WithVoucherCode(code string) *BookingBuilder {
	b.VoucherCode = &code
	return b
}

func (b *BookingBuilder) WithNote(note string) *BookingBuilder {
	b.Note = note
	return b
}

func (b *BookingBuilder) AsPitchUnavailable() *BookingBuilder {
	b.PitchAvailable = false
	return b
}

func (b *BookingBuilder) AsOfferingUnavailable() *BookingBuilder {
	b.OfferingAvailable = false
	return b
}
