package queries

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/errs"
)

type UserQueryService struct {
	users UserReadStore
}

func NewUserQueryService(users UserReadStore) *UserQueryService {
	return &UserQueryService{users: users}
}

func (s *UserQueryService) GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := s.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}
