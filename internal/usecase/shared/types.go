package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pitchbook/internal/domain/user"
)

// Actor is the authenticated caller of an engine operation. It is always
// passed explicitly; nothing in the usecase layer reads ambient session state.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// Minimal snapshots for command-side reads.

type PitchSnapshot struct {
	ID               uuid.UUID
	FacilityID       *uuid.UUID
	Name             string
	BasePricePerHour decimal.Decimal
	IsAvailable      bool
}

type OfferingSnapshot struct {
	ID          uuid.UUID
	PitchID     uuid.UUID
	SlotID      uuid.UUID
	SlotName    string
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	SlotActive  bool
	IsAvailable bool
}

type VoucherSnapshot struct {
	ID              uuid.UUID
	Code            string
	DiscountPercent int32
	MinOrderValue   *decimal.Decimal
	UsageLimit      *int32
	UsedCount       int32
	StartDate       *time.Time
	EndDate         *time.Time
	IsActive        bool
}

type BookingSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	PitchID     uuid.UUID
	OfferingID  uuid.UUID
	BookingDate time.Time
	Status      string
	VoucherID   *uuid.UUID
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
