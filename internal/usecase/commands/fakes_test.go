//go:build unit

package commands_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pitchbook/internal/domain/booking"
	"pitchbook/internal/infra"
	"pitchbook/internal/usecase/shared"
)

// engineState is an in-memory stand-in for the whole persistence layer. It
// implements every repository port the unit of work hands out, so command
// tests exercise real service logic against deterministic storage.
type engineState struct {
	pitches   map[uuid.UUID]*shared.PitchSnapshot
	offerings map[uuid.UUID]*shared.OfferingSnapshot
	vouchers  map[string]*shared.VoucherSnapshot
	bookings  map[uuid.UUID]*shared.BookingSnapshot
	active    map[string]bool
	idem      map[uuid.UUID]*shared.IdempotencyRecord

	created  []*booking.Booking
	enqueued []string

	createErr   error
	voucherErr  error
	redeemErr   error
	redeemCalls int
}

func newEngineState() *engineState {
	return &engineState{
		pitches:   make(map[uuid.UUID]*shared.PitchSnapshot),
		offerings: make(map[uuid.UUID]*shared.OfferingSnapshot),
		vouchers:  make(map[string]*shared.VoucherSnapshot),
		bookings:  make(map[uuid.UUID]*shared.BookingSnapshot),
		active:    make(map[string]bool),
		idem:      make(map[uuid.UUID]*shared.IdempotencyRecord),
	}
}

func slotKey(offeringID uuid.UUID, date time.Time) string {
	return offeringID.String() + "|" + date.Format("2006-01-02")
}

// CommandReads

func (s *engineState) PitchByID(_ context.Context, id uuid.UUID) (*shared.PitchSnapshot, error) {
	p, ok := s.pitches[id]
	if !ok {
		return nil, infra.NewNotFound(errors.New("pitch not found"))
	}
	return p, nil
}

func (s *engineState) OfferingByID(_ context.Context, id uuid.UUID) (*shared.OfferingSnapshot, error) {
	o, ok := s.offerings[id]
	if !ok {
		return nil, infra.NewNotFound(errors.New("offering not found"))
	}
	return o, nil
}

func (s *engineState) VoucherByCode(_ context.Context, code string) (*shared.VoucherSnapshot, error) {
	if s.voucherErr != nil {
		return nil, s.voucherErr
	}
	v, ok := s.vouchers[code]
	if !ok {
		return nil, infra.NewNotFound(errors.New("voucher not found"))
	}
	return v, nil
}

func (s *engineState) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.NewNotFound(errors.New("booking not found"))
	}
	return b, nil
}

func (s *engineState) HasActiveBooking(_ context.Context, offeringID uuid.UUID, date time.Time) (bool, error) {
	return s.active[slotKey(offeringID, date)], nil
}

func (s *engineState) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r, ok := s.idem[key]
	if !ok || r.UserID != userID {
		return nil, infra.NewNotFound(errors.New("idempotency key not found"))
	}
	return r, nil
}

// BookingRepository

func (s *engineState) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.created = append(s.created, b)
	snap := &shared.BookingSnapshot{
		ID:          b.ID(),
		UserID:      b.UserID(),
		PitchID:     b.PitchID(),
		OfferingID:  b.OfferingID(),
		BookingDate: b.Date().Value(),
		Status:      booking.StatusPending.String(),
		VoucherID:   b.VoucherID(),
	}
	s.bookings[b.ID()] = snap
	s.active[slotKey(b.OfferingID(), b.Date().Value())] = true
	return b.ID(), nil
}

func (s *engineState) TransitionFromPending(_ context.Context, id uuid.UUID, to booking.Status) (bool, error) {
	snap, ok := s.bookings[id]
	if !ok {
		return false, infra.NewNotFound(errors.New("booking not found"))
	}
	if snap.Status != booking.StatusPending.String() {
		return false, nil
	}
	snap.Status = to.String()
	return true, nil
}

// VoucherRepository

func (s *engineState) Redeem(_ context.Context, _ uuid.UUID, _ time.Time) error {
	if s.redeemErr != nil {
		return s.redeemErr
	}
	s.redeemCalls++
	return nil
}

// NotificationRepository

func (s *engineState) Enqueue(_ context.Context, kind string, _ []byte, _ time.Time) error {
	s.enqueued = append(s.enqueued, kind)
	return nil
}

// IdempotencyRepository

func (s *engineState) TryInsert(_ context.Context, key, userID uuid.UUID, _, requestHash string, expiresAt time.Time) error {
	if _, ok := s.idem[key]; ok {
		return infra.NewDuplicateKey(errors.New("idempotency key exists"))
	}
	s.idem[key] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "in_progress",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (s *engineState) UpdateStatusCompleted(_ context.Context, key, userID uuid.UUID, responseHash string, bookingID uuid.UUID) error {
	r, ok := s.idem[key]
	if !ok || r.UserID != userID {
		return infra.NewNotFound(errors.New("idempotency key not found"))
	}
	r.Status = "completed"
	r.RequestHash = responseHash
	r.ResultBookingID = &bookingID
	return nil
}

// UserRepository

func (s *engineState) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeUnitOfWork struct {
	st *engineState
}

func (u *fakeUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{st: u.st})
}

func (u *fakeUnitOfWork) Reads() shared.CommandReads                { return u.st }
func (u *fakeUnitOfWork) Idempotency() shared.IdempotencyRepository { return u.st }

type fakeTx struct {
	st *engineState
}

func (t *fakeTx) Bookings() shared.BookingRepository           { return t.st }
func (t *fakeTx) Vouchers() shared.VoucherRepository           { return t.st }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t.st }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return t.st }
func (t *fakeTx) Users() shared.UserRepository                 { return t.st }
func (t *fakeTx) Reads() shared.CommandReads                   { return t.st }
