package readstore

import (
	"context"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/usecase/queries"
)

type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(q db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: q}
}

const voucherViewQuery = `
SELECT id, code, discount_percent, min_order_value::text, usage_limit,
       used_count, start_date, end_date, is_active
FROM vouchers
WHERE code = $1`

func (r *VoucherReadStore) FindByCode(ctx context.Context, code string) (*queries.VoucherView, error) {
	var (
		view        queries.VoucherView
		minOrderStr *string
	)
	err := r.db.QueryRow(ctx, voucherViewQuery, code).Scan(
		&view.ID, &view.Code, &view.DiscountPercent, &minOrderStr,
		&view.UsageLimit, &view.UsedCount, &view.StartDate, &view.EndDate, &view.IsActive,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	minOrder, err := parseDecimalPtr(minOrderStr)
	if err != nil {
		return nil, err
	}
	view.MinOrderValue = minOrder
	return &view, nil
}
