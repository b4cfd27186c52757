//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domvoucher "pitchbook/internal/domain/voucher"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
)

type VoucherBuilder struct {
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

func NewVoucherBuilder() *VoucherBuilder {
	return &VoucherBuilder{
		ID:              uuid.New(),
		Code:            "TEST10",
		DiscountPercent: 10,
		IsActive:        true,
	}
}

func (v *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(v)
	return v
}

func (v *VoucherBuilder) BuildDomain() (*domvoucher.Voucher, error) {
	code, err := domvoucher.NewCode(v.Code)
	if err != nil {
		return nil, err
	}
	return domvoucher.NewVoucher(
		v.ID, code, v.DiscountPercent, v.MinOrderValue,
		v.UsageLimit, v.UsedCount, v.StartDate, v.EndDate, v.IsActive,
	)
}

func (v *VoucherBuilder) BuildSnapshot() *shared.VoucherSnapshot {
	return &shared.VoucherSnapshot{
		ID:              v.ID,
		Code:            v.Code,
		DiscountPercent: v.DiscountPercent,
		MinOrderValue:   v.MinOrderValue,
		UsageLimit:      v.UsageLimit,
		UsedCount:       v.UsedCount,
		StartDate:       v.StartDate,
		EndDate:         v.EndDate,
		IsActive:        v.IsActive,
	}
}

func (v *VoucherBuilder) BuildView() *queries.VoucherView {
	return &queries.VoucherView{
		ID:              v.ID,
		Code:            v.Code,
		DiscountPercent: v.DiscountPercent,
		MinOrderValue:   v.MinOrderValue,
		UsageLimit:      v.UsageLimit,
		UsedCount:       v.UsedCount,
		StartDate:       v.StartDate,
		EndDate:         v.EndDate,
		IsActive:        v.IsActive,
	}
}

// Fluent builder methods
func (v *VoucherBuilder) WithCode(code string) *VoucherBuilder {
	v.Code = code
	return v
}

func (v *VoucherBuilder) WithDiscountPercent(percent int32) *VoucherBuilder {
	v.DiscountPercent = percent
	return v
}

func (v *VoucherBuilder) WithMinOrderValue(min decimal.Decimal) *VoucherBuilder {
	v.MinOrderValue = &min
	return v
}

func (v *VoucherBuilder) WithUsageLimit(limit int32) *VoucherBuilder {
	v.UsageLimit = &limit
	return v
}

func (v *VoucherBuilder) WithUsedCount(count int32) *VoucherBuilder {
	v.UsedCount = count
	return v
}

func (v *VoucherBuilder) WithWindow(start, end time.Time) *VoucherBuilder {
	v.StartDate = &start
	v.EndDate = &end
	return v
}

func (v *VoucherBuilder) AsInactive() *VoucherBuilder {
	v.IsActive = false
	return v
}

func (v *VoucherBuilder) AsExhausted() *VoucherBuilder {
	limit := int32(5)
	v.UsageLimit = &limit
	v.UsedCount = 5
	return v
}
