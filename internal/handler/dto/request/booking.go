package request

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const bookingDateLayout = "2006-01-02"

type CreateBookingRequest struct {
	PitchID     uuid.UUID `json:"pitch_id" binding:"required"`
	OfferingID  uuid.UUID `json:"offering_id" binding:"required"`
	BookingDate string    `json:"booking_date" binding:"required"`
	VoucherCode *string   `json:"voucher_code"`
	Note        string    `json:"note"`
}

func (r CreateBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(bookingDateLayout, r.BookingDate)
}

// Hash fingerprints the request for idempotency-key comparison. The same key
// with a different fingerprint is a client bug, not a retry.
func (r CreateBookingRequest) Hash() string {
	var voucher string
	if r.VoucherCode != nil {
		voucher = *r.VoucherCode
	}
	parts := strings.Join([]string{
		r.PitchID.String(), r.OfferingID.String(), r.BookingDate, voucher, r.Note,
	}, "|")
	sum := sha256.Sum256([]byte(parts))
	return hex.EncodeToString(sum[:])
}
