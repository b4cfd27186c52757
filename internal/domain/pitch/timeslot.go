package pitch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrSlotNotOrdered   = errors.New("slot start must be before slot end")
	ErrEmptySlotName    = errors.New("slot name must not be empty")
)

// TimeOfDay is a wall-clock time with minute precision, independent of any date.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay parses "HH:MM" (the wire and storage format).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &minute); err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return t.minutes / 60 }
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) MinutesUntil(other TimeOfDay) int {
	return other.minutes - t.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// TimeSlot is a reusable named time window from the shared slot catalog.
// Slots are unique per (start, end) pair; the constraint lives in the schema.
type TimeSlot struct {
	id       uuid.UUID
	name     string
	start    TimeOfDay
	end      TimeOfDay
	isActive bool
}

func NewTimeSlot(id uuid.UUID, name string, start, end TimeOfDay, isActive bool) (*TimeSlot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySlotName
	}
	if !start.Before(end) {
		return nil, ErrSlotNotOrdered
	}
	return &TimeSlot{
		id:       id,
		name:     name,
		start:    start,
		end:      end,
		isActive: isActive,
	}, nil
}

func (s *TimeSlot) ID() uuid.UUID    { return s.id }
func (s *TimeSlot) Name() string     { return s.name }
func (s *TimeSlot) Start() TimeOfDay { return s.start }
func (s *TimeSlot) End() TimeOfDay   { return s.end }
func (s *TimeSlot) IsActive() bool   { return s.isActive }

// DurationHours is the slot length in hours, rounded to 2 decimal places.
func (s *TimeSlot) DurationHours() decimal.Decimal {
	minutes := s.start.MinutesUntil(s.end)
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}
