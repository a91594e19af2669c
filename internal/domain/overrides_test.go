package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClubScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/types"
)

func TestHoliday_Matches(t *testing.T) {
	exact := &Holiday{
		Name: "Club Anniversary",
		Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, exact.Matches(time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)))
	assert.False(t, exact.Matches(time.Date(2027, 9, 15, 0, 0, 0, 0, time.UTC)))

	recurring := &Holiday{
		Name:        "New Year",
		Date:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
	}
	assert.True(t, recurring.Matches(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, recurring.Matches(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, recurring.Matches(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestSpecialBooking_CoversDate(t *testing.T) {
	b := &SpecialBooking{
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, b.CoversDate(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, b.CoversDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, b.CoversDate(time.Date(2026, 9, 12, 23, 0, 0, 0, time.UTC)))
	assert.False(t, b.CoversDate(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)))
}

func TestSpecialBooking_OverlapsTime(t *testing.T) {
	slotStart := types.TimeString("18:00")
	slotEnd := types.TimeString("19:30")

	// All-day booking overlaps every slot
	allDay := &SpecialBooking{}
	assert.True(t, allDay.OverlapsTime(slotStart, slotEnd))

	// Partial overlap at the end of the slot
	overlapping := &SpecialBooking{
		StartTime: ptr.Ptr(types.TimeString("19:00")),
		EndTime:   ptr.Ptr(types.TimeString("21:00")),
	}
	assert.True(t, overlapping.OverlapsTime(slotStart, slotEnd))

	// Booking ends exactly when the slot starts - no overlap
	before := &SpecialBooking{
		StartTime: ptr.Ptr(types.TimeString("16:00")),
		EndTime:   ptr.Ptr(types.TimeString("18:00")),
	}
	assert.False(t, before.OverlapsTime(slotStart, slotEnd))

	// Booking starts exactly when the slot ends - no overlap
	after := &SpecialBooking{
		StartTime: ptr.Ptr(types.TimeString("19:30")),
		EndTime:   ptr.Ptr(types.TimeString("22:00")),
	}
	assert.False(t, after.OverlapsTime(slotStart, slotEnd))

	// Booking fully inside the slot
	inside := &SpecialBooking{
		StartTime: ptr.Ptr(types.TimeString("18:30")),
		EndTime:   ptr.Ptr(types.TimeString("19:00")),
	}
	assert.True(t, inside.OverlapsTime(slotStart, slotEnd))
}
