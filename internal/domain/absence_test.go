package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsenceRequest_Transitions(t *testing.T) {
	tests := []struct {
		status      AbsenceStatus
		canDecide   bool
		canMakeup   bool
		canComplete bool
		canExpire   bool
		terminal    bool
		holdsSeat   bool
	}{
		{StatusPending, true, false, false, false, false, false},
		{StatusApproved, false, true, false, true, false, false},
		{StatusRejected, false, false, false, false, true, false},
		{StatusMakeupSelected, false, false, true, false, false, true},
		{StatusCompleted, false, false, false, false, true, true},
		{StatusExpired, false, false, false, false, true, false},
		{StatusNoMakeup, false, false, false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &AbsenceRequest{Status: tt.status}
			assert.Equal(t, tt.canDecide, a.CanBeDecided())
			assert.Equal(t, tt.canMakeup, a.CanSelectMakeup())
			assert.Equal(t, tt.canComplete, a.CanBeCompleted())
			assert.Equal(t, tt.canExpire, a.CanExpire())
			assert.Equal(t, tt.terminal, a.IsTerminal())
			assert.Equal(t, tt.holdsSeat, a.HoldsSeat())
		})
	}
}

func TestAbsenceRequest_IsDeadlinePassed(t *testing.T) {
	deadline := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	a := &AbsenceRequest{Status: StatusApproved, MakeupDeadline: &deadline}

	assert.False(t, a.IsDeadlinePassed(deadline.Add(-time.Hour)))
	assert.False(t, a.IsDeadlinePassed(deadline))
	assert.True(t, a.IsDeadlinePassed(deadline.Add(time.Minute)))

	// Without a deadline nothing can be overdue
	a.MakeupDeadline = nil
	assert.False(t, a.IsDeadlinePassed(deadline.Add(time.Hour)))
}

func TestAbsenceRequest_DaysUntilDeadline(t *testing.T) {
	deadline := time.Date(2026, 9, 10, 9, 30, 0, 0, time.UTC)
	a := &AbsenceRequest{Status: StatusApproved, MakeupDeadline: &deadline}

	// Full week remaining
	days := a.DaysUntilDeadline(time.Date(2026, 9, 3, 18, 0, 0, 0, time.UTC))
	require.NotNil(t, days)
	assert.Equal(t, 7, *days)

	// Same day counts as zero
	days = a.DaysUntilDeadline(time.Date(2026, 9, 10, 1, 0, 0, 0, time.UTC))
	require.NotNil(t, days)
	assert.Equal(t, 0, *days)

	// Past the deadline clamps at zero
	days = a.DaysUntilDeadline(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, days)
	assert.Equal(t, 0, *days)

	// Only approved requests report a countdown
	a.Status = StatusMakeupSelected
	assert.Nil(t, a.DaysUntilDeadline(time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)))
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 30, 23, 59, 0, 0, time.UTC),
	))
	assert.False(t, SameMonth(
		time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	))
	// Same month of different years is a different month
	assert.False(t, SameMonth(
		time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2026, 2, 17, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls over into the next year
	start, end = MonthBounds(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDateOnly(t *testing.T) {
	d := DateOnly(time.Date(2026, 9, 15, 18, 45, 12, 999, time.UTC))
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), d)
}
