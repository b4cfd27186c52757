package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTOs for the read side)

type SlotAvailabilityView struct {
	OfferingID    uuid.UUID       `json:"offering_id"`
	SlotID        uuid.UUID       `json:"slot_id"`
	Name          string          `json:"name"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	Price         decimal.Decimal `json:"price"`
	Available     bool            `json:"available"`
}

type VoucherCheckView struct {
	Valid           bool   `json:"valid"`
	Message         string `json:"message"`
	DiscountPercent *int32 `json:"discount_percent,omitempty"`
}

type BookingView struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	UserEmail     string          `json:"user_email"`
	PitchID       uuid.UUID       `json:"pitch_id"`
	PitchName     string          `json:"pitch_name"`
	OfferingID    uuid.UUID       `json:"offering_id"`
	SlotName      string          `json:"slot_name"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	BookingDate   time.Time       `json:"booking_date"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	VoucherID     *uuid.UUID      `json:"voucher_id,omitempty"`
	VoucherCode   *string         `json:"voucher_code,omitempty"`
	Note          *string         `json:"note,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID       `json:"id"`
	PitchID     uuid.UUID       `json:"pitch_id"`
	PitchName   string          `json:"pitch_name"`
	SlotName    string          `json:"slot_name"`
	BookingDate time.Time       `json:"booking_date"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PitchView struct {
	ID               uuid.UUID       `json:"id"`
	FacilityID       *uuid.UUID      `json:"facility_id,omitempty"`
	FacilityName     *string         `json:"facility_name,omitempty"`
	Name             string          `json:"name"`
	PitchType        string          `json:"pitch_type"`
	BasePricePerHour decimal.Decimal `json:"base_price_per_hour"`
	IsAvailable      bool            `json:"is_available"`
	CreatedAt        time.Time       `json:"created_at"`
}

// OfferingRow is the raw availability row produced by the read store; pricing
// and the final available flag are derived from it in the query layer.
type OfferingRow struct {
	OfferingID       uuid.UUID
	SlotID           uuid.UUID
	SlotName         string
	StartTime        string // "HH:MM"
	EndTime          string // "HH:MM"
	BasePricePerHour decimal.Decimal
	HasActiveBooking bool
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type VoucherView struct {
	ID              uuid.UUID        `json:"id"`
	Code            string           `json:"code"`
	DiscountPercent int32            `json:"discount_percent"`
	MinOrderValue   *decimal.Decimal `json:"min_order_value,omitempty"`
	UsageLimit      *int32           `json:"usage_limit,omitempty"`
	UsedCount       int32            `json:"used_count"`
	StartDate       *time.Time       `json:"start_date,omitempty"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	IsActive        bool             `json:"is_active"`
}

// Read store seams implemented by internal/infra/readstore.

type PitchReadStore interface {
	FindAll(ctx context.Context) ([]*PitchView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PitchView, error)
	// FindOfferingsForDate lists the pitch's statically offered slots (offer
	// flag and slot active flag both true) ordered by start time, each marked
	// with whether an active booking exists for the date.
	FindOfferingsForDate(ctx context.Context, pitchID uuid.UUID, date time.Time) ([]*OfferingRow, error)
}

type VoucherReadStore interface {
	FindByCode(ctx context.Context, code string) (*VoucherView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}
