package queries

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/errs"
	"pitchbook/internal/usecase/shared"
)

type BookingQueryService struct {
	bookings BookingReadStore
}

func NewBookingQueryService(bookings BookingReadStore) *BookingQueryService {
	return &BookingQueryService{bookings: bookings}
}

// GetByID returns the booking detail for its owner or any admin.
func (s *BookingQueryService) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && view.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return view, nil
}

// GetByIDSystem bypasses the ownership check; it backs internal reads such as
// returning the freshly created booking from the create command.
func (s *BookingQueryService) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return s.getByID(ctx, id)
}

func (s *BookingQueryService) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error) {
	items, err := s.bookings.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}

func (s *BookingQueryService) getByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}
