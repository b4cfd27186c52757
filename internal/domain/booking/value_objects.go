package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrPastDate    = errors.New("booking date cannot be in the past")
	ErrTooFarAhead = errors.New("booking date is too far in the future")
)

// BookingDate is a calendar date (midnight-normalized) a slot is booked for.
type BookingDate struct {
	value time.Time
}

// NewBookingDate validates date against today and the advance-booking window.
// maxAdvanceDays <= 0 disables the upper bound.
func NewBookingDate(date, today time.Time, maxAdvanceDays int) (BookingDate, error) {
	d := truncateToDay(date)
	t := truncateToDay(today)
	if d.Before(t) {
		return BookingDate{}, ErrPastDate
	}
	if maxAdvanceDays > 0 && d.After(t.AddDate(0, 0, maxAdvanceDays)) {
		return BookingDate{}, ErrTooFarAhead
	}
	return BookingDate{value: d}, nil
}

// ReconstructBookingDate restores a stored date without re-validating; a
// booking created in the past legitimately carries a date that is "past" now.
func ReconstructBookingDate(date time.Time) BookingDate {
	return BookingDate{value: truncateToDay(date)}
}

func (d BookingDate) Value() time.Time {
	return d.value
}

func (d BookingDate) String() string {
	return d.value.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
