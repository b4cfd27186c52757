package commands

import "errors"

var (
	ErrPitchNotFound       = errors.New("pitch not found")
	ErrOfferingNotFound    = errors.New("offering not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPitchUnavailable    = errors.New("pitch is not available for booking")
	ErrOfferingUnavailable = errors.New("offering is not available for booking")
	ErrOfferingMismatch    = errors.New("offering does not belong to the pitch")
	ErrInvalidBookingDate  = errors.New("invalid booking date")
	ErrSlotTaken           = errors.New("slot already has an active booking for this date")
	ErrInvalidTransition   = errors.New("booking is not pending")
	ErrForbidden           = errors.New("operation not allowed for this user")
	ErrVoucherExhausted    = errors.New("voucher usage limit reached")

	ErrIdempotencyInProgress = errors.New("request with this idempotency key is still in progress")
	ErrIdempotencyReused     = errors.New("idempotency key reused with a different request")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
