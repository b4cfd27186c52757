package queries

import (
	"context"
	"errors"

	"pitchbook/internal/domain/voucher"
	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/pkg/errs"
)

// VoucherQueryService answers "would this code apply right now". It is a pure
// read: checking a voucher never consumes usage.
type VoucherQueryService struct {
	vouchers VoucherReadStore
	clock    clock.Clock
}

func NewVoucherQueryService(vouchers VoucherReadStore, c clock.Clock) *VoucherQueryService {
	return &VoucherQueryService{vouchers: vouchers, clock: c}
}

func (s *VoucherQueryService) Check(ctx context.Context, rawCode string) (*VoucherCheckView, error) {
	code, err := voucher.NewCode(rawCode)
	if err != nil {
		return &VoucherCheckView{Valid: false, Message: "invalid voucher code"}, nil
	}

	view, err := s.vouchers.FindByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &VoucherCheckView{Valid: false, Message: "voucher not found"}, nil
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	v, err := voucher.NewVoucher(
		view.ID,
		code,
		view.DiscountPercent,
		view.MinOrderValue,
		view.UsageLimit,
		view.UsedCount,
		view.StartDate,
		view.EndDate,
		view.IsActive,
	)
	if err != nil {
		return nil, errs.Wrap(err, "malformed voucher row")
	}

	if err := v.ValidateUsage(clock.Today(s.clock)); err != nil {
		return &VoucherCheckView{Valid: false, Message: usageMessage(err)}, nil
	}

	percent := view.DiscountPercent
	return &VoucherCheckView{
		Valid:           true,
		Message:         "voucher is valid",
		DiscountPercent: &percent,
	}, nil
}

func usageMessage(err error) string {
	switch {
	case errors.Is(err, voucher.ErrInactive):
		return "voucher is inactive"
	case errors.Is(err, voucher.ErrExhausted):
		return "voucher usage limit reached"
	case errors.Is(err, voucher.ErrNotYetValid):
		return "voucher is not yet valid"
	case errors.Is(err, voucher.ErrExpired):
		return "voucher has expired"
	default:
		return "voucher cannot be used"
	}
}
