package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClubScheduleService/pkg/ptr"
)

func TestClassSlot_IsWithinValidity(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	slot := &ClassSlot{ValidFrom: &from, ValidTo: &to}

	assert.False(t, slot.IsWithinValidity(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, slot.IsWithinValidity(from))
	assert.True(t, slot.IsWithinValidity(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, slot.IsWithinValidity(to))
	assert.False(t, slot.IsWithinValidity(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Open-ended window accepts everything
	open := &ClassSlot{}
	assert.True(t, open.IsWithinValidity(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, open.IsWithinValidity(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestClassSlot_IsScheduledOn(t *testing.T) {
	slot := &ClassSlot{DayOfWeek: time.Tuesday}

	// 2026-09-15 is a Tuesday
	assert.True(t, slot.IsScheduledOn(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, slot.IsScheduledOn(time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)))
}

func TestClassSlot_HasCapacityLimit(t *testing.T) {
	assert.False(t, (&ClassSlot{}).HasCapacityLimit())
	assert.True(t, (&ClassSlot{Capacity: ptr.Ptr(12)}).HasCapacityLimit())
}

func TestClassAssignment_IsActive(t *testing.T) {
	assert.True(t, (&ClassAssignment{Status: AssignmentActive}).IsActive())
	assert.False(t, (&ClassAssignment{Status: AssignmentDropped}).IsActive())
}
