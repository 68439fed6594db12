package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func recurringSlot(id string, day int, from, until string) Slot {
	return Slot{
		Id:             ID(id),
		DentistId:      "12",
		ClinicId:       "3",
		DayOfWeek:      intPtr(day),
		StartTime:      "09:00:00",
		EndTime:        "17:00:00",
		IsRecurring:    true,
		EffectiveFrom:  from,
		EffectiveUntil: until,
	}
}

func oneTimeSlot(id string, date string) Slot {
	return Slot{
		Id:             ID(id),
		DentistId:      "12",
		ClinicId:       "3",
		DayOfWeek:      intPtr(0),
		StartTime:      "10:00:00",
		EndTime:        "11:00:00",
		IsRecurring:    false,
		EffectiveFrom:  date,
		EffectiveUntil: date,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSlotsForDateRecurring(t *testing.T) {
	r := NewResolver(nil)

	// Monday slot effective through 2024.
	slot := recurringSlot("a1", 1, "2024-01-01", "2024-12-31")

	t.Run("matches on its weekday inside the window", func(t *testing.T) {
		// 2024-06-17 is a Monday.
		got := r.SlotsForDate([]Slot{slot}, date(2024, time.June, 17))
		require.Len(t, got, 1)
		assert.Equal(t, ID("a1"), got[0].Id)
	})

	t.Run("excluded on a different weekday", func(t *testing.T) {
		// 2024-06-16 is a Sunday.
		got := r.SlotsForDate([]Slot{slot}, date(2024, time.June, 16))
		assert.Empty(t, got)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		// 2024-01-01 and 2024-12-30 are both Mondays.
		assert.Len(t, r.SlotsForDate([]Slot{slot}, date(2024, time.January, 1)), 1)
		assert.Len(t, r.SlotsForDate([]Slot{slot}, date(2024, time.December, 30)), 1)
	})

	t.Run("excluded outside the window", func(t *testing.T) {
		// Monday before effectiveFrom.
		got := r.SlotsForDate([]Slot{slot}, date(2023, time.December, 25))
		assert.Empty(t, got)
	})

	t.Run("timestamped bounds are compared date-only", func(t *testing.T) {
		s := recurringSlot("a2", 1, "2024-06-17T13:45:00Z", "2024-06-17T02:00:00Z")
		got := r.SlotsForDate([]Slot{s}, date(2024, time.June, 17))
		assert.Len(t, got, 1)
	})

	t.Run("unparseable bound excludes the slot without failing the query", func(t *testing.T) {
		bad := recurringSlot("a3", 1, "not-a-date", "2024-12-31")
		got := r.SlotsForDate([]Slot{bad, slot}, date(2024, time.June, 17))
		require.Len(t, got, 1)
		assert.Equal(t, ID("a1"), got[0].Id)
	})

	t.Run("inverted window matches nothing", func(t *testing.T) {
		inv := recurringSlot("a4", 1, "2024-12-31", "2024-01-01")
		assert.Empty(t, r.SlotsForDate([]Slot{inv}, date(2024, time.June, 17)))
	})
}

func TestSlotsForDateOneTime(t *testing.T) {
	r := NewResolver(nil)
	slot := oneTimeSlot("b1", "2024-06-17")

	t.Run("matches only its exact date", func(t *testing.T) {
		assert.Len(t, r.SlotsForDate([]Slot{slot}, date(2024, time.June, 17)), 1)
		assert.Empty(t, r.SlotsForDate([]Slot{slot}, date(2024, time.June, 18)))
	})

	t.Run("comparison is string-exact", func(t *testing.T) {
		timestamped := oneTimeSlot("b2", "2024-06-17T00:00:00Z")
		assert.Empty(t, r.SlotsForDate([]Slot{timestamped}, date(2024, time.June, 17)))
	})
}

func TestSlotsForDateDayOfWeekNormalization(t *testing.T) {
	r := NewResolver(nil)

	t.Run("dayOfWeek 7 behaves as Sunday", func(t *testing.T) {
		iso := recurringSlot("c1", 7, "2024-01-01", "2024-12-31")
		zero := recurringSlot("c2", 0, "2024-01-01", "2024-12-31")
		// 2024-06-16 is a Sunday.
		sunday := date(2024, time.June, 16)
		assert.Len(t, r.SlotsForDate([]Slot{iso}, sunday), 1)
		assert.Len(t, r.SlotsForDate([]Slot{zero}, sunday), 1)
	})

	t.Run("out-of-range dayOfWeek is always excluded", func(t *testing.T) {
		for _, day := range []int{-1, 8} {
			s := recurringSlot("c3", day, "2024-01-01", "2024-12-31")
			for d := 0; d < 7; d++ {
				assert.Empty(t, r.SlotsForDate([]Slot{s}, date(2024, time.June, 16+d)))
			}
		}
	})

	t.Run("missing dayOfWeek is excluded", func(t *testing.T) {
		s := recurringSlot("c4", 0, "2024-01-01", "2024-12-31")
		s.DayOfWeek = nil
		assert.Empty(t, r.SlotsForDate([]Slot{s}, date(2024, time.June, 16)))
	})
}

func TestSlotsForDateDoesNotMutateInput(t *testing.T) {
	r := NewResolver(nil)
	slot := recurringSlot("d1", 7, "2024-01-01", "2024-12-31")
	input := []Slot{slot}

	got := r.SlotsForDate(input, date(2024, time.June, 16))

	require.Len(t, got, 1)
	assert.Equal(t, 0, *got[0].DayOfWeek)
	// The caller-owned record still carries the wire value.
	assert.Equal(t, 7, *input[0].DayOfWeek)
}

func TestSlotsForDateStableOrder(t *testing.T) {
	r := NewResolver(nil)
	slots := []Slot{
		recurringSlot("s1", 1, "2024-01-01", "2024-12-31"),
		oneTimeSlot("s2", "2024-06-17"),
		recurringSlot("s3", 1, "2024-01-01", "2024-12-31"),
	}

	got := r.SlotsForDate(slots, date(2024, time.June, 17))

	require.Len(t, got, 3)
	assert.Equal(t, ID("s1"), got[0].Id)
	assert.Equal(t, ID("s2"), got[1].Id)
	assert.Equal(t, ID("s3"), got[2].Id)
}

func TestNormalize(t *testing.T) {
	t.Run("returns a copy", func(t *testing.T) {
		s := recurringSlot("n1", 7, "2024-01-01", "2024-12-31")
		out, ok := Normalize(s)
		require.True(t, ok)
		assert.Equal(t, 0, *out.DayOfWeek)
		assert.Equal(t, 7, *s.DayOfWeek)
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		for _, day := range []int{-1, 8, 42} {
			s := recurringSlot("n2", day, "2024-01-01", "2024-12-31")
			_, ok := Normalize(s)
			assert.False(t, ok, "day %d", day)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := recurringSlot("v1", 3, "2024-01-01", "2024-12-31")
	assert.True(t, Validate(valid))

	t.Run("missing identifiers", func(t *testing.T) {
		s := valid
		s.Id = ""
		assert.False(t, Validate(s))

		s = valid
		s.DentistId = ""
		assert.False(t, Validate(s))

		s = valid
		s.ClinicId = ""
		assert.False(t, Validate(s))
	})

	t.Run("missing times or dates", func(t *testing.T) {
		s := valid
		s.StartTime = ""
		assert.False(t, Validate(s))

		s = valid
		s.EffectiveUntil = ""
		assert.False(t, Validate(s))
	})

	t.Run("dayOfWeek bounds", func(t *testing.T) {
		s := valid
		s.DayOfWeek = intPtr(7)
		assert.False(t, Validate(s), "validation runs after normalization")
		s.DayOfWeek = nil
		assert.False(t, Validate(s))
	})
}

func TestSlotFlagDefaults(t *testing.T) {
	var s Slot
	assert.False(t, s.Blocked())
	assert.True(t, s.Active())

	blocked := true
	inactive := false
	s.IsBlocked = &blocked
	s.IsActive = &inactive
	assert.True(t, s.Blocked())
	assert.False(t, s.Active())
}
