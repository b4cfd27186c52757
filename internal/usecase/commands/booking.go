package commands

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/domain/booking"
	"pitchbook/internal/domain/pitch"
	"pitchbook/internal/domain/voucher"
	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/clock"
	"pitchbook/internal/pkg/errs"
	"pitchbook/internal/usecase/shared"
)

const (
	bookingEndpoint      = "POST /api/bookings"
	idempotencyKeyTTL    = 24 * time.Hour
	idempotencyCompleted = "completed"
)

type CreateBookingInput struct {
	Actor          shared.Actor
	PitchID        uuid.UUID
	OfferingID     uuid.UUID
	Date           time.Time
	VoucherCode    *string
	Note           string
	IdempotencyKey *uuid.UUID
	RequestHash    string
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	// VoucherWarning is set when a voucher code was supplied but not applied.
	// An unusable voucher never blocks the booking itself.
	VoucherWarning *string
	AlreadyExisted bool
}

type BookingCommandService struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	factory *booking.Factory
}

func NewBookingCommandService(uow shared.UnitOfWork, c clock.Clock, maxAdvanceDays int) *BookingCommandService {
	return &BookingCommandService{
		uow:     uow,
		clock:   c,
		factory: booking.NewFactory(c, maxAdvanceDays),
	}
}

// CreateBooking creates a pending booking for (offering, date). The slot
// conflict check runs both before and during the insert; the partial unique
// index over active bookings is the authority under concurrency.
func (s *BookingCommandService) CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	if input.IdempotencyKey != nil {
		result, claimed, err := s.claimIdempotencyKey(ctx, input)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return result, nil
		}
	}

	reads := s.uow.Reads()

	p, err := s.loadPitch(ctx, reads, input.PitchID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable() {
		return nil, ErrPitchUnavailable
	}

	offering, err := s.loadOffering(ctx, reads, input.OfferingID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(offering) {
		return nil, ErrOfferingMismatch
	}
	if !offering.IsAvailable() || !offering.Slot().IsActive() {
		return nil, ErrOfferingUnavailable
	}

	v, warning, err := s.resolveVoucher(ctx, reads, input.VoucherCode)
	if err != nil {
		return nil, err
	}

	date, err := booking.NewBookingDate(input.Date, clock.Today(s.clock), s.factory.MaxAdvanceDays)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingDate)
	}

	b, err := s.factory.CreateBooking(input.Actor.ID, p, offering, date, v, booking.NewNote(input.Note))
	if err != nil {
		return nil, errs.Wrap(err, "failed to assemble booking")
	}
	if v != nil && b.VoucherID() == nil && warning == nil {
		w := "voucher not applied: order total below voucher minimum"
		warning = &w
	}

	var bookingID uuid.UUID
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		taken, err := tx.Reads().HasActiveBooking(ctx, offering.ID(), date.Value())
		if err != nil {
			return errs.Wrap(err, "failed to check slot availability")
		}
		if taken {
			return ErrSlotTaken
		}

		id, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrSlotTaken)
			}
			return errs.Wrap(err, "failed to create booking")
		}
		bookingID = id

		if err := s.enqueueBookingEvent(ctx, tx, "booking_created", id, b.UserID()); err != nil {
			return err
		}

		if input.IdempotencyKey != nil {
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, *input.IdempotencyKey, input.Actor.ID, input.RequestHash, id); err != nil {
				return errs.Wrap(err, "failed to complete idempotency key")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateBookingResult{BookingID: bookingID, VoucherWarning: warning}, nil
}

// Confirm moves a pending booking to confirmed and redeems its voucher in the
// same transaction. A voucher at its usage cap aborts the whole transition, so
// a booking is never confirmed against an exhausted voucher and the counter is
// advanced exactly once per confirmation.
func (s *BookingCommandService) Confirm(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := s.loadBookingSnapshot(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.transition(ctx, tx, id, booking.StatusConfirmed); err != nil {
			return err
		}

		if snap.VoucherID != nil {
			if err := tx.Vouchers().Redeem(ctx, *snap.VoucherID, s.clock.Now()); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, ErrVoucherExhausted)
				}
				return errs.Wrap(err, "failed to redeem voucher")
			}
		}

		return s.enqueueBookingEvent(ctx, tx, "booking_confirmed", id, snap.UserID)
	})
}

func (s *BookingCommandService) Reject(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := s.loadBookingSnapshot(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.transition(ctx, tx, id, booking.StatusRejected); err != nil {
			return err
		}
		return s.enqueueBookingEvent(ctx, tx, "booking_rejected", id, snap.UserID)
	})
}

// Cancel lets the owner (or an admin) withdraw a pending booking. Confirmed
// bookings cannot be cancelled through this path.
func (s *BookingCommandService) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := s.loadBookingSnapshot(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && snap.UserID != actor.ID {
			return ErrForbidden
		}
		if err := s.transition(ctx, tx, id, booking.StatusCancelled); err != nil {
			return err
		}
		return s.enqueueBookingEvent(ctx, tx, "booking_cancelled", id, snap.UserID)
	})
}

// claimIdempotencyKey inserts the key or resolves a duplicate. The bool result
// reports whether the caller now owns the key and should proceed.
func (s *BookingCommandService) claimIdempotencyKey(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, bool, error) {
	key := *input.IdempotencyKey
	expiresAt := s.clock.Now().Add(idempotencyKeyTTL)

	err := s.uow.Idempotency().TryInsert(ctx, key, input.Actor.ID, bookingEndpoint, input.RequestHash, expiresAt)
	if err == nil {
		return nil, true, nil
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, false, errs.Wrap(err, "failed to claim idempotency key")
	}

	record, err := s.uow.Reads().IdempotencyByKey(ctx, key, input.Actor.ID)
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to load idempotency record")
	}
	if record.RequestHash != input.RequestHash {
		return nil, false, ErrIdempotencyReused
	}
	if record.Status == idempotencyCompleted && record.ResultBookingID != nil {
		return &CreateBookingResult{BookingID: *record.ResultBookingID, AlreadyExisted: true}, false, nil
	}
	return nil, false, ErrIdempotencyInProgress
}

func (s *BookingCommandService) loadPitch(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*pitch.Pitch, error) {
	snap, err := reads.PitchByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrPitchNotFound)
		}
		return nil, errs.Wrap(err, "failed to load pitch")
	}
	p, err := pitch.NewPitch(snap.ID, snap.FacilityID, snap.Name, snap.BasePricePerHour, snap.IsAvailable)
	if err != nil {
		return nil, errs.Wrap(err, "malformed pitch row")
	}
	return p, nil
}

func (s *BookingCommandService) loadOffering(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*pitch.Offering, error) {
	snap, err := reads.OfferingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOfferingNotFound)
		}
		return nil, errs.Wrap(err, "failed to load offering")
	}

	start, err := pitch.ParseTimeOfDay(snap.StartTime)
	if err != nil {
		return nil, errs.Wrap(err, "malformed slot start time")
	}
	end, err := pitch.ParseTimeOfDay(snap.EndTime)
	if err != nil {
		return nil, errs.Wrap(err, "malformed slot end time")
	}
	slot, err := pitch.NewTimeSlot(snap.SlotID, snap.SlotName, start, end, snap.SlotActive)
	if err != nil {
		return nil, errs.Wrap(err, "malformed slot row")
	}
	offering, err := pitch.NewOffering(snap.ID, snap.PitchID, slot, snap.IsAvailable)
	if err != nil {
		return nil, errs.Wrap(err, "malformed offering row")
	}
	return offering, nil
}

// resolveVoucher turns an optional raw code into a voucher usable today, or a
// warning explaining why it was skipped. Lookup and validation problems with
// the code itself never fail the command.
func (s *BookingCommandService) resolveVoucher(ctx context.Context, reads shared.CommandReads, rawCode *string) (*voucher.Voucher, *string, error) {
	if rawCode == nil || strings.TrimSpace(*rawCode) == "" {
		return nil, nil, nil
	}

	code, err := voucher.NewCode(*rawCode)
	if err != nil {
		w := "voucher not applied: invalid code"
		return nil, &w, nil
	}

	snap, err := reads.VoucherByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			w := "voucher not applied: code not found"
			return nil, &w, nil
		}
		return nil, nil, errs.Wrap(err, "failed to load voucher")
	}

	v, err := voucher.NewVoucher(
		snap.ID, code, snap.DiscountPercent, snap.MinOrderValue,
		snap.UsageLimit, snap.UsedCount, snap.StartDate, snap.EndDate, snap.IsActive,
	)
	if err != nil {
		return nil, nil, errs.Wrap(err, "malformed voucher row")
	}

	if err := v.ValidateUsage(clock.Today(s.clock)); err != nil {
		w := "voucher not applied: " + err.Error()
		return nil, &w, nil
	}
	return v, nil, nil
}

func (s *BookingCommandService) loadBookingSnapshot(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, err := tx.Reads().BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Wrap(err, "failed to load booking")
	}
	return snap, nil
}

func (s *BookingCommandService) transition(ctx context.Context, tx shared.Tx, id uuid.UUID, to booking.Status) error {
	ok, err := tx.Bookings().TransitionFromPending(ctx, id, to)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookingNotFound)
		}
		return errs.Wrap(err, "failed to update booking status")
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

type bookingEventPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
}

func (s *BookingCommandService) enqueueBookingEvent(ctx context.Context, tx shared.Tx, kind string, bookingID, userID uuid.UUID) error {
	payload, err := json.Marshal(bookingEventPayload{BookingID: bookingID, UserID: userID})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	if err := tx.Notifications().Enqueue(ctx, kind, payload, s.clock.Now()); err != nil {
		return errs.Wrap(err, "failed to enqueue notification")
	}
	return nil
}
