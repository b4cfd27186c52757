package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/domain/pitch"
	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/pkg/errs"
)

// AvailabilityQueryService resolves the per-date slot view of a pitch: every
// offered slot with its derived duration and price, marked available unless an
// active booking already claims it for that date.
type AvailabilityQueryService struct {
	pitches PitchReadStore
	clock   clock.Clock
}

func NewAvailabilityQueryService(pitches PitchReadStore, c clock.Clock) *AvailabilityQueryService {
	return &AvailabilityQueryService{pitches: pitches, clock: c}
}

func (s *AvailabilityQueryService) ListSlots(
	ctx context.Context,
	pitchID uuid.UUID,
	date time.Time,
	onlyAvailable bool,
) ([]*SlotAvailabilityView, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if day.Before(clock.Today(s.clock)) {
		return nil, ErrPastDate
	}

	p, err := s.pitches.FindByID(ctx, pitchID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrPitchNotFound)
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	rows, err := s.pitches.FindOfferingsForDate(ctx, pitchID, day)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	views := make([]*SlotAvailabilityView, 0, len(rows))
	for _, row := range rows {
		start, err := pitch.ParseTimeOfDay(row.StartTime)
		if err != nil {
			return nil, errs.Wrap(err, "malformed slot start time")
		}
		end, err := pitch.ParseTimeOfDay(row.EndTime)
		if err != nil {
			return nil, errs.Wrap(err, "malformed slot end time")
		}
		slot, err := pitch.NewTimeSlot(row.SlotID, row.SlotName, start, end, true)
		if err != nil {
			return nil, errs.Wrap(err, "malformed slot row")
		}

		duration := slot.DurationHours()
		available := p.IsAvailable && !row.HasActiveBooking
		if onlyAvailable && !available {
			continue
		}

		views = append(views, &SlotAvailabilityView{
			OfferingID:    row.OfferingID,
			SlotID:        row.SlotID,
			Name:          row.SlotName,
			StartTime:     start.String(),
			EndTime:       end.String(),
			DurationHours: duration,
			Price:         row.BasePricePerHour.Mul(duration).Round(2),
			Available:     available,
		})
	}

	return views, nil
}
