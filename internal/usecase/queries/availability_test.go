//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/usecase/queries"
	queriesmock "pitchbook/tests/mock/queries"
)

var today = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func newAvailabilityService(t *testing.T) (*queries.AvailabilityQueryService, *queriesmock.MockPitchReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockPitchReadStore(ctrl)
	svc := queries.NewAvailabilityQueryService(store, clock.NewMockClock(today.Add(10*time.Hour)))
	return svc, store
}

func TestListSlots(t *testing.T) {
	pitchID := uuid.New()
	date := today.AddDate(0, 0, 3)

	pitchView := &queries.PitchView{
		ID:          pitchID,
		Name:        "Court A",
		IsAvailable: true,
	}

	rows := []*queries.OfferingRow{
		{
			OfferingID:       uuid.New(),
			SlotID:           uuid.New(),
			SlotName:         "Morning",
			StartTime:        "07:00",
			EndTime:          "09:00",
			BasePricePerHour: decimal.NewFromInt(100000),
			HasActiveBooking: true,
		},
		{
			OfferingID:       uuid.New(),
			SlotID:           uuid.New(),
			SlotName:         "Evening",
			StartTime:        "18:00",
			EndTime:          "19:30",
			BasePricePerHour: decimal.NewFromInt(100000),
			HasActiveBooking: false,
		},
	}

	t.Run("returns all slots with derived price and availability", func(t *testing.T) {
		svc, store := newAvailabilityService(t)
		store.EXPECT().FindByID(gomock.Any(), pitchID).Return(pitchView, nil)
		store.EXPECT().FindOfferingsForDate(gomock.Any(), pitchID, date).Return(rows, nil)

		views, err := svc.ListSlots(context.Background(), pitchID, date, false)
		require.NoError(t, err)
		require.Len(t, views, 2)

		morning := views[0]
		assert.Equal(t, "Morning", morning.Name)
		assert.True(t, morning.DurationHours.Equal(decimal.NewFromInt(2)))
		assert.True(t, morning.Price.Equal(decimal.NewFromInt(200000)), "price %s", morning.Price)
		assert.False(t, morning.Available)

		evening := views[1]
		assert.True(t, evening.DurationHours.Equal(decimal.RequireFromString("1.5")))
		assert.True(t, evening.Price.Equal(decimal.NewFromInt(150000)), "price %s", evening.Price)
		assert.True(t, evening.Available)
	})

	t.Run("only_available filters booked slots", func(t *testing.T) {
		svc, store := newAvailabilityService(t)
		store.EXPECT().FindByID(gomock.Any(), pitchID).Return(pitchView, nil)
		store.EXPECT().FindOfferingsForDate(gomock.Any(), pitchID, date).Return(rows, nil)

		views, err := svc.ListSlots(context.Background(), pitchID, date, true)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Evening", views[0].Name)
	})

	t.Run("closed pitch marks every slot unavailable", func(t *testing.T) {
		svc, store := newAvailabilityService(t)
		closed := &queries.PitchView{ID: pitchID, Name: "Court A", IsAvailable: false}
		store.EXPECT().FindByID(gomock.Any(), pitchID).Return(closed, nil)
		store.EXPECT().FindOfferingsForDate(gomock.Any(), pitchID, date).Return(rows, nil)

		views, err := svc.ListSlots(context.Background(), pitchID, date, false)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.False(t, v.Available)
		}
	})

	t.Run("past date is rejected without hitting the store", func(t *testing.T) {
		svc, _ := newAvailabilityService(t)

		_, err := svc.ListSlots(context.Background(), pitchID, today.AddDate(0, 0, -1), false)
		require.ErrorIs(t, err, queries.ErrPastDate)
	})

	t.Run("same-day queries are allowed", func(t *testing.T) {
		svc, store := newAvailabilityService(t)
		store.EXPECT().FindByID(gomock.Any(), pitchID).Return(pitchView, nil)
		store.EXPECT().FindOfferingsForDate(gomock.Any(), pitchID, today).Return(nil, nil)

		views, err := svc.ListSlots(context.Background(), pitchID, today, false)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("unknown pitch", func(t *testing.T) {
		svc, store := newAvailabilityService(t)
		store.EXPECT().FindByID(gomock.Any(), pitchID).
			Return(nil, infra.NewNotFound(errors.New("no rows")))

		_, err := svc.ListSlots(context.Background(), pitchID, date, false)
		require.ErrorIs(t, err, queries.ErrPitchNotFound)
	})
}
