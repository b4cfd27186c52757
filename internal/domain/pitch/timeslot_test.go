//go:build unit

package pitch_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchbook/internal/domain/pitch"
)

func TestTimeOfDay(t *testing.T) {
	t.Run("parses wire format", func(t *testing.T) {
		cases := []struct {
			input string
			hour  int
			min   int
		}{
			{"07:00", 7, 0},
			{"09:30", 9, 30},
			{"23:59", 23, 59},
			{"00:00", 0, 0},
		}
		for _, c := range cases {
			tod, err := pitch.ParseTimeOfDay(c.input)
			require.NoError(t, err, c.input)
			assert.Equal(t, c.hour, tod.Hour())
			assert.Equal(t, c.min, tod.Minute())
			assert.Equal(t, c.input, tod.String())
		}
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		for _, input := range []string{"24:00", "12:60", "-1:00", "garbage", ""} {
			_, err := pitch.ParseTimeOfDay(input)
			require.ErrorIs(t, err, pitch.ErrInvalidTimeOfDay, input)
		}
	})

	t.Run("ordering", func(t *testing.T) {
		early, err := pitch.NewTimeOfDay(7, 0)
		require.NoError(t, err)
		late, err := pitch.NewTimeOfDay(9, 30)
		require.NoError(t, err)

		assert.True(t, early.Before(late))
		assert.False(t, late.Before(early))
		assert.Equal(t, 150, early.MinutesUntil(late))
	})
}

func TestTimeSlot(t *testing.T) {
	mustTime := func(s string) pitch.TimeOfDay {
		tod, err := pitch.ParseTimeOfDay(s)
		require.NoError(t, err)
		return tod
	}

	t.Run("valid slot", func(t *testing.T) {
		slot, err := pitch.NewTimeSlot(uuid.New(), "Morning", mustTime("07:00"), mustTime("09:00"), true)
		require.NoError(t, err)
		assert.Equal(t, "Morning", slot.Name())
		assert.True(t, slot.IsActive())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := pitch.NewTimeSlot(uuid.New(), "   ", mustTime("07:00"), mustTime("09:00"), true)
		require.ErrorIs(t, err, pitch.ErrEmptySlotName)
	})

	t.Run("rejects unordered times", func(t *testing.T) {
		_, err := pitch.NewTimeSlot(uuid.New(), "Backwards", mustTime("09:00"), mustTime("07:00"), true)
		require.ErrorIs(t, err, pitch.ErrSlotNotOrdered)

		_, err = pitch.NewTimeSlot(uuid.New(), "Empty", mustTime("09:00"), mustTime("09:00"), true)
		require.ErrorIs(t, err, pitch.ErrSlotNotOrdered)
	})

	t.Run("duration in hours rounded to 2 places", func(t *testing.T) {
		cases := []struct {
			start, end string
			expected   string
		}{
			{"07:00", "09:00", "2"},
			{"10:00", "11:30", "1.5"},
			{"09:00", "09:20", "0.33"},
			{"00:00", "23:59", "23.98"},
		}
		for _, c := range cases {
			slot, err := pitch.NewTimeSlot(uuid.New(), "Slot", mustTime(c.start), mustTime(c.end), true)
			require.NoError(t, err)

			expected, err := decimal.NewFromString(c.expected)
			require.NoError(t, err)
			assert.True(t, slot.DurationHours().Equal(expected),
				"%s-%s: got %s, want %s", c.start, c.end, slot.DurationHours(), c.expected)
		}
	})
}
