package queries

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/errs"
)

type PitchQueryService struct {
	pitches PitchReadStore
}

func NewPitchQueryService(pitches PitchReadStore) *PitchQueryService {
	return &PitchQueryService{pitches: pitches}
}

func (s *PitchQueryService) List(ctx context.Context) ([]*PitchView, error) {
	views, err := s.pitches.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (s *PitchQueryService) GetByID(ctx context.Context, id uuid.UUID) (*PitchView, error) {
	view, err := s.pitches.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrPitchNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}
