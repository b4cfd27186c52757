//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pitchbook/internal/domain/user"
	"pitchbook/internal/infra"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
	queriesmock "pitchbook/tests/mock/queries"
)

func newBookingService(t *testing.T) (*queries.BookingQueryService, *queriesmock.MockBookingReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockBookingReadStore(ctrl)
	return queries.NewBookingQueryService(store), store
}

func TestGetBookingByID(t *testing.T) {
	ownerID := uuid.New()
	view := &queries.BookingView{ID: uuid.New(), UserID: ownerID, Status: "pending"}

	t.Run("owner reads their booking", func(t *testing.T) {
		svc, store := newBookingService(t)
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := svc.GetByID(context.Background(), shared.Actor{ID: ownerID, Role: user.RoleUser}, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("admin reads any booking", func(t *testing.T) {
		svc, store := newBookingService(t)
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := svc.GetByID(context.Background(), shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}, view.ID)
		require.NoError(t, err)
	})

	t.Run("strangers are refused", func(t *testing.T) {
		svc, store := newBookingService(t)
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := svc.GetByID(context.Background(), shared.Actor{ID: uuid.New(), Role: user.RoleUser}, view.ID)
		require.ErrorIs(t, err, queries.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, store := newBookingService(t)
		store.EXPECT().FindByID(gomock.Any(), view.ID).
			Return(nil, infra.NewNotFound(errors.New("no rows")))

		_, err := svc.GetByID(context.Background(), shared.Actor{ID: ownerID, Role: user.RoleUser}, view.ID)
		require.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("system read skips ownership", func(t *testing.T) {
		svc, store := newBookingService(t)
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := svc.GetByIDSystem(context.Background(), view.ID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})
}

func TestListBookingsByUser(t *testing.T) {
	svc, store := newBookingService(t)
	userID := uuid.New()
	items := []*queries.BookingListItem{{ID: uuid.New()}, {ID: uuid.New()}}
	store.EXPECT().FindByUserID(gomock.Any(), userID, int32(50)).Return(items, nil)

	got, err := svc.ListByUser(context.Background(), userID, 50)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}
