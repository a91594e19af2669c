package domain

import (
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/pkg/types"
)

// RecurrenceKind describes how a slot repeats
type RecurrenceKind string

const (
	RecurrenceWeekly RecurrenceKind = "weekly"
)

// ClassSlot represents a recurring weekly class session template:
// day of week, time window, coach and seat capacity.
// Slots are authored by schedule administration and are read-only here.
type ClassSlot struct {
	ID         int64
	ProgramID  int64
	VenueID    int64 // Площадка (через программу)
	Label      *string
	CoachID    *int64
	DayOfWeek  time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   *int // nil = unbounded
	Recurrence RecurrenceKind
	ValidFrom  *time.Time // inclusive
	ValidTo    *time.Time // inclusive
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacityLimit returns true if the slot has a bounded number of seats
func (s *ClassSlot) HasCapacityLimit() bool {
	return s.Capacity != nil
}

// IsWithinValidity returns true if date falls inside the slot's validity window
func (s *ClassSlot) IsWithinValidity(date time.Time) bool {
	d := DateOnly(date)
	if s.ValidFrom != nil && d.Before(DateOnly(*s.ValidFrom)) {
		return false
	}
	if s.ValidTo != nil && d.After(DateOnly(*s.ValidTo)) {
		return false
	}
	return true
}

// IsScheduledOn returns true if the slot's weekday matches the date
func (s *ClassSlot) IsScheduledOn(date time.Time) bool {
	return date.Weekday() == s.DayOfWeek
}

// AssignmentStatus represents the status of a member's regular assignment to a slot
type AssignmentStatus string

const (
	AssignmentActive  AssignmentStatus = "active"
	AssignmentDropped AssignmentStatus = "dropped"
)

// ClassAssignment represents a member's regular enrollment into a slot.
// Created and dropped by admin actions outside this service; only the
// active count feeds capacity accounting here.
type ClassAssignment struct {
	ID         int64
	MemberID   int64
	SlotID     int64
	AssignedAt time.Time
	Status     AssignmentStatus
}

// IsActive returns true if the assignment still occupies a seat
func (a *ClassAssignment) IsActive() bool {
	return a.Status == AssignmentActive
}
