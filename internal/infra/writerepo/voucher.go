package writerepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/infra"
	"pitchbook/internal/infra/db"
	"pitchbook/internal/pkg/errs"
)

type VoucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(q db.DBTX) *VoucherRepository {
	return &VoucherRepository{db: q}
}

// The conditional update is the whole point: it re-checks activity, the
// validity window and the usage cap at write time, so two concurrent
// redemptions can never push used_count past usage_limit.
const redeemVoucherQuery = `
UPDATE vouchers
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
  AND is_active
  AND (start_date IS NULL OR start_date <= $2::date)
  AND (end_date IS NULL OR end_date >= $2::date)
  AND (usage_limit IS NULL OR used_count < usage_limit)`

const voucherExistsQuery = `SELECT EXISTS (SELECT 1 FROM vouchers WHERE id = $1)`

func (r *VoucherRepository) Redeem(ctx context.Context, voucherID uuid.UUID, asOf time.Time) error {
	tag, err := r.db.Exec(ctx, redeemVoucherQuery, voucherID, asOf)
	if err != nil {
		return db.WrapError(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, voucherExistsQuery, voucherID).Scan(&exists); err != nil {
		return db.WrapError(err)
	}
	if !exists {
		return infra.NewNotFound(errs.New("voucher not found"))
	}
	return infra.NewConflict(errs.New("voucher is not redeemable"))
}
