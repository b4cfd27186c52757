package queries

import "errors"

var (
	ErrPitchNotFound   = errors.New("pitch not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("not allowed to view this resource")
	ErrPastDate        = errors.New("date is in the past")
	ErrQueryFailed     = errors.New("query failed")
)
