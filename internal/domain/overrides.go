package domain

import (
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/pkg/types"
)

// Holiday cancels every slot club-wide on its date.
// Recurring holidays match the same month/day every year.
type Holiday struct {
	ID          int64
	Name        string
	Date        time.Time
	IsRecurring bool
}

// Matches returns true if the holiday falls on the given date
func (h *Holiday) Matches(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return DateOnly(h.Date).Equal(DateOnly(date))
}

// SlotCancellation is a one-off cancellation of a single slot on a single date
type SlotCancellation struct {
	ID     int64
	SlotID int64
	Date   time.Time
	Reason *string
}

// SpecialBooking is a venue-wide booking (tournament, rental, maintenance)
// that may cancel overlapping classes at that venue
type SpecialBooking struct {
	ID             int64
	VenueID        int64
	Title          string
	StartDate      time.Time // inclusive
	EndDate        time.Time // inclusive
	StartTime      *types.TimeString // nil = весь день
	EndTime        *types.TimeString // nil = весь день
	Reason         *string
	CancelsClasses bool
}

// CoversDate returns true if date falls inside the booking's date range
func (b *SpecialBooking) CoversDate(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(b.StartDate)) && !d.After(DateOnly(b.EndDate))
}

// OverlapsTime returns true if the booking's time window overlaps the
// slot's [slotStart, slotEnd). A booking without time bounds is all-day
// and overlaps everything.
func (b *SpecialBooking) OverlapsTime(slotStart, slotEnd types.TimeString) bool {
	if b.StartTime == nil || b.EndTime == nil {
		return true
	}
	return b.StartTime.IsBefore(slotEnd) && b.EndTime.IsAfter(slotStart)
}
