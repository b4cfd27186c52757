package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPercent  = errors.New("discount percent must be between 0 and 100")
	ErrWindowNotSorted = errors.New("voucher start date must not be after end date")
	ErrInactive        = errors.New("voucher is inactive")
	ErrExhausted       = errors.New("voucher usage limit reached")
	ErrNotYetValid     = errors.New("voucher is not yet valid")
	ErrExpired         = errors.New("voucher has expired")
)

// Voucher is a percentage discount code with an optional validity window,
// optional minimum order value and optional usage cap. The used count here is
// a snapshot; the authoritative counter is only ever advanced by the ledger's
// conditional redeem, never through this entity.
type Voucher struct {
	id              uuid.UUID
	code            Code
	discountPercent int32
	minOrderValue   *decimal.Decimal
	usageLimit      *int32
	usedCount       int32
	startDate       *time.Time
	endDate         *time.Time
	isActive        bool
}

func NewVoucher(
	id uuid.UUID,
	code Code,
	discountPercent int32,
	minOrderValue *decimal.Decimal,
	usageLimit *int32,
	usedCount int32,
	startDate, endDate *time.Time,
	isActive bool,
) (*Voucher, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return nil, ErrInvalidPercent
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, ErrWindowNotSorted
	}
	return &Voucher{
		id:              id,
		code:            code,
		discountPercent: discountPercent,
		minOrderValue:   minOrderValue,
		usageLimit:      usageLimit,
		usedCount:       usedCount,
		startDate:       startDate,
		endDate:         endDate,
		isActive:        isActive,
	}, nil
}

func (v *Voucher) ID() uuid.UUID                   { return v.id }
func (v *Voucher) Code() Code                      { return v.code }
func (v *Voucher) DiscountPercent() int32          { return v.discountPercent }
func (v *Voucher) MinOrderValue() *decimal.Decimal { return v.minOrderValue }
func (v *Voucher) UsageLimit() *int32              { return v.usageLimit }
func (v *Voucher) UsedCount() int32                { return v.usedCount }
func (v *Voucher) StartDate() *time.Time           { return v.startDate }
func (v *Voucher) EndDate() *time.Time             { return v.endDate }
func (v *Voucher) IsActive() bool                  { return v.isActive }

// IsValidOn evaluates the full validity predicate for the given calendar date.
func (v *Voucher) IsValidOn(today time.Time) bool {
	return v.ValidateUsage(today) == nil
}

func (v *Voucher) ValidateUsage(today time.Time) error {
	if !v.isActive {
		return ErrInactive
	}
	if v.usageLimit != nil && v.usedCount >= *v.usageLimit {
		return ErrExhausted
	}
	if v.startDate != nil && today.Before(*v.startDate) {
		return ErrNotYetValid
	}
	if v.endDate != nil && today.After(*v.endDate) {
		return ErrExpired
	}
	return nil
}

// MeetsMinOrder reports whether the base price satisfies the voucher's minimum
// order value, if one is set.
func (v *Voucher) MeetsMinOrder(basePrice decimal.Decimal) bool {
	return v.minOrderValue == nil || basePrice.GreaterThanOrEqual(*v.minOrderValue)
}

// DiscountAmount is basePrice × percent / 100, rounded to 2 decimal places.
func (v *Voucher) DiscountAmount(basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.
		Mul(decimal.NewFromInt32(v.discountPercent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

// Apply returns the discounted price; it does not check validity or minimum
// order value, callers gate on those first.
func (v *Voucher) Apply(basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.Sub(v.DiscountAmount(basePrice))
}
