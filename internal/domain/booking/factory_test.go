//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchbook/internal/domain/booking"
	"pitchbook/internal/domain/pitch"
	"pitchbook/internal/pkg/clock"
	"pitchbook/tests/common/builder"
)

const maxAdvanceDays = 14

func newFactory() *booking.Factory {
	return booking.NewFactory(clock.NewMockClock(today.Add(10*time.Hour)), maxAdvanceDays)
}

func newPendingBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b := builder.NewBookingBuilder()
	p, err := b.BuildPitchDomain()
	require.NoError(t, err)
	offering, err := b.BuildOfferingDomain()
	require.NoError(t, err)
	date, err := booking.NewBookingDate(today.AddDate(0, 0, 3), today, maxAdvanceDays)
	require.NoError(t, err)

	created, err := newFactory().CreateBooking(b.UserID, p, offering, date, nil, booking.NewNote(""))
	require.NoError(t, err)
	return created
}

func TestQuotePrice(t *testing.T) {
	f := newFactory()

	build := func(t *testing.T, b *builder.BookingBuilder) (*pitch.Pitch, *pitch.Offering) {
		t.Helper()
		p, err := b.BuildPitchDomain()
		require.NoError(t, err)
		offering, err := b.BuildOfferingDomain()
		require.NoError(t, err)
		return p, offering
	}

	t.Run("no voucher", func(t *testing.T) {
		// 07:00-09:00 at 100000/hour
		p, offering := build(t, builder.NewBookingBuilder())

		q := f.QuotePrice(p, offering, nil)
		assert.True(t, q.DurationHours.Equal(decimal.NewFromInt(2)), "duration %s", q.DurationHours)
		assert.True(t, q.BasePrice.Equal(decimal.NewFromInt(200000)), "base %s", q.BasePrice)
		assert.True(t, q.FinalPrice.Equal(decimal.NewFromInt(200000)), "final %s", q.FinalPrice)
		assert.False(t, q.DiscountApplied)
	})

	t.Run("10 percent voucher", func(t *testing.T) {
		p, offering := build(t, builder.NewBookingBuilder())
		v, err := builder.NewVoucherBuilder().WithDiscountPercent(10).BuildDomain()
		require.NoError(t, err)

		q := f.QuotePrice(p, offering, v)
		assert.True(t, q.FinalPrice.Equal(decimal.NewFromInt(180000)), "final %s", q.FinalPrice)
		assert.True(t, q.DiscountApplied)
	})

	t.Run("voucher below minimum order is ignored", func(t *testing.T) {
		p, offering := build(t, builder.NewBookingBuilder())
		v, err := builder.NewVoucherBuilder().
			WithMinOrderValue(decimal.NewFromInt(300000)).
			BuildDomain()
		require.NoError(t, err)

		q := f.QuotePrice(p, offering, v)
		assert.True(t, q.FinalPrice.Equal(decimal.NewFromInt(200000)), "final %s", q.FinalPrice)
		assert.False(t, q.DiscountApplied)
	})

	t.Run("expired voucher is ignored", func(t *testing.T) {
		p, offering := build(t, builder.NewBookingBuilder())
		v, err := builder.NewVoucherBuilder().
			WithWindow(today.AddDate(0, 0, -20), today.AddDate(0, 0, -10)).
			BuildDomain()
		require.NoError(t, err)

		q := f.QuotePrice(p, offering, v)
		assert.True(t, q.FinalPrice.Equal(decimal.NewFromInt(200000)))
		assert.False(t, q.DiscountApplied)
	})

	t.Run("100 percent voucher gives zero price", func(t *testing.T) {
		p, offering := build(t, builder.NewBookingBuilder())
		v, err := builder.NewVoucherBuilder().WithDiscountPercent(100).BuildDomain()
		require.NoError(t, err)

		q := f.QuotePrice(p, offering, v)
		assert.True(t, q.FinalPrice.IsZero())
		assert.True(t, q.DiscountApplied)
	})
}

func TestCreateBooking(t *testing.T) {
	f := newFactory()

	mustDate := func(t *testing.T, d time.Time) booking.BookingDate {
		t.Helper()
		date, err := booking.NewBookingDate(d, today, maxAdvanceDays)
		require.NoError(t, err)
		return date
	}

	t.Run("pending booking with derived values", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		p, err := b.BuildPitchDomain()
		require.NoError(t, err)
		offering, err := b.BuildOfferingDomain()
		require.NoError(t, err)

		created, err := f.CreateBooking(b.UserID, p, offering, mustDate(t, today.AddDate(0, 0, 3)), nil, booking.NewNote("evening match"))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, created.ID())
		assert.Equal(t, booking.StatusPending, created.Status())
		assert.Equal(t, b.UserID, created.UserID())
		assert.Equal(t, b.PitchID, created.PitchID())
		assert.Equal(t, b.OfferingID, created.OfferingID())
		assert.True(t, created.FinalPrice().Equal(decimal.NewFromInt(200000)))
		assert.True(t, created.DurationHours().Equal(decimal.NewFromInt(2)))
		assert.Nil(t, created.VoucherID())
		assert.Equal(t, "evening match", created.Note().String())
	})

	t.Run("voucher id recorded only when discount applies", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		p, err := b.BuildPitchDomain()
		require.NoError(t, err)
		offering, err := b.BuildOfferingDomain()
		require.NoError(t, err)

		applied, err := builder.NewVoucherBuilder().BuildDomain()
		require.NoError(t, err)
		created, err := f.CreateBooking(b.UserID, p, offering, mustDate(t, today.AddDate(0, 0, 3)), applied, booking.NewNote(""))
		require.NoError(t, err)
		require.NotNil(t, created.VoucherID())
		assert.Equal(t, applied.ID(), *created.VoucherID())
		assert.True(t, created.FinalPrice().Equal(decimal.NewFromInt(180000)))

		skipped, err := builder.NewVoucherBuilder().AsInactive().BuildDomain()
		require.NoError(t, err)
		created, err = f.CreateBooking(b.UserID, p, offering, mustDate(t, today.AddDate(0, 0, 3)), skipped, booking.NewNote(""))
		require.NoError(t, err)
		assert.Nil(t, created.VoucherID())
		assert.True(t, created.FinalPrice().Equal(decimal.NewFromInt(200000)))
	})

	t.Run("offering from another pitch is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		p, err := b.BuildPitchDomain()
		require.NoError(t, err)
		foreign, err := builder.NewBookingBuilder().BuildOfferingDomain()
		require.NoError(t, err)

		_, err = f.CreateBooking(b.UserID, p, foreign, mustDate(t, today.AddDate(0, 0, 3)), nil, booking.NewNote(""))
		require.ErrorIs(t, err, pitch.ErrOfferingMismatch)
	})
}
