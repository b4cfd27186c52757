//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/usecase/queries"
	"pitchbook/tests/common/builder"
	queriesmock "pitchbook/tests/mock/queries"
)

func newVoucherService(t *testing.T) (*queries.VoucherQueryService, *queriesmock.MockVoucherReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockVoucherReadStore(ctrl)
	svc := queries.NewVoucherQueryService(store, clock.NewMockClock(today.Add(10*time.Hour)))
	return svc, store
}

func TestCheckVoucher(t *testing.T) {
	t.Run("valid voucher reports its discount", func(t *testing.T) {
		svc, store := newVoucherService(t)
		store.EXPECT().FindByCode(gomock.Any(), "TEST10").
			Return(builder.NewVoucherBuilder().BuildView(), nil)

		view, err := svc.Check(context.Background(), "test10")
		require.NoError(t, err)
		assert.True(t, view.Valid)
		assert.Equal(t, "voucher is valid", view.Message)
		require.NotNil(t, view.DiscountPercent)
		assert.Equal(t, int32(10), *view.DiscountPercent)
	})

	t.Run("malformed code short-circuits the store", func(t *testing.T) {
		svc, _ := newVoucherService(t)

		view, err := svc.Check(context.Background(), "not a code!")
		require.NoError(t, err)
		assert.False(t, view.Valid)
		assert.Equal(t, "invalid voucher code", view.Message)
		assert.Nil(t, view.DiscountPercent)
	})

	t.Run("unknown code", func(t *testing.T) {
		svc, store := newVoucherService(t)
		store.EXPECT().FindByCode(gomock.Any(), "NOPE").
			Return(nil, infra.NewNotFound(errors.New("no rows")))

		view, err := svc.Check(context.Background(), "NOPE")
		require.NoError(t, err)
		assert.False(t, view.Valid)
		assert.Equal(t, "voucher not found", view.Message)
	})

	t.Run("usage failures map to messages", func(t *testing.T) {
		cases := []struct {
			name    string
			build   func() *queries.VoucherView
			message string
		}{
			{
				name:    "inactive",
				build:   func() *queries.VoucherView { return builder.NewVoucherBuilder().AsInactive().BuildView() },
				message: "voucher is inactive",
			},
			{
				name:    "exhausted",
				build:   func() *queries.VoucherView { return builder.NewVoucherBuilder().AsExhausted().BuildView() },
				message: "voucher usage limit reached",
			},
			{
				name: "not yet valid",
				build: func() *queries.VoucherView {
					return builder.NewVoucherBuilder().
						WithWindow(today.AddDate(0, 0, 1), today.AddDate(0, 0, 10)).
						BuildView()
				},
				message: "voucher is not yet valid",
			},
			{
				name: "expired",
				build: func() *queries.VoucherView {
					return builder.NewVoucherBuilder().
						WithWindow(today.AddDate(0, 0, -10), today.AddDate(0, 0, -1)).
						BuildView()
				},
				message: "voucher has expired",
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				svc, store := newVoucherService(t)
				store.EXPECT().FindByCode(gomock.Any(), "TEST10").Return(c.build(), nil)

				view, err := svc.Check(context.Background(), "TEST10")
				require.NoError(t, err)
				assert.False(t, view.Valid)
				assert.Equal(t, c.message, view.Message)
			})
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, store := newVoucherService(t)
		store.EXPECT().FindByCode(gomock.Any(), "TEST10").
			Return(nil, infra.NewDBFailure(errors.New("connection reset")))

		_, err := svc.Check(context.Background(), "TEST10")
		require.ErrorIs(t, err, queries.ErrQueryFailed)
	})
}
