package domain

import "time"

// AbsenceStatus represents the status of an absence request
type AbsenceStatus string

const (
	StatusPending        AbsenceStatus = "pending"
	StatusApproved       AbsenceStatus = "approved"
	StatusRejected       AbsenceStatus = "rejected"
	StatusMakeupSelected AbsenceStatus = "makeup_selected"
	StatusCompleted      AbsenceStatus = "completed"
	StatusExpired        AbsenceStatus = "expired"
	StatusNoMakeup       AbsenceStatus = "no_makeup"
)

// AbsenceRequest represents a member's declared intent to miss one
// occurrence of a class slot, subject to admin approval and an optional
// makeup booking within a deadline
type AbsenceRequest struct {
	ID         int64
	MemberID   int64
	SlotID     int64 // Слот, занятие которого пропускается
	AbsentDate time.Time
	Reason     *string
	Status     AbsenceStatus

	// Admin decision
	ApprovedBy *int64
	ApprovedAt *time.Time
	AdminNotes *string

	// Makeup booking
	MakeupSlotID   *int64
	MakeupDate     *time.Time
	MakeupDeadline *time.Time // ApprovedAt + MakeupDeadlineDays

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is possible
func (a *AbsenceRequest) IsTerminal() bool {
	return a.Status != StatusPending &&
		a.Status != StatusApproved &&
		a.Status != StatusMakeupSelected
}

// CanBeDecided returns true if an admin can still approve or reject the request
func (a *AbsenceRequest) CanBeDecided() bool {
	return a.Status == StatusPending
}

// CanSelectMakeup returns true if the member can still pick a makeup slot
// Deadline is checked separately by the use case
func (a *AbsenceRequest) CanSelectMakeup() bool {
	return a.Status == StatusApproved
}

// CanBeCompleted returns true if the makeup booking can be confirmed
func (a *AbsenceRequest) CanBeCompleted() bool {
	return a.Status == StatusMakeupSelected
}

// CanExpire returns true if the request is eligible for the expiry sweep
func (a *AbsenceRequest) CanExpire() bool {
	return a.Status == StatusApproved
}

// IsDeadlinePassed returns true if the makeup deadline is behind now
func (a *AbsenceRequest) IsDeadlinePassed(now time.Time) bool {
	return a.MakeupDeadline != nil && now.After(*a.MakeupDeadline)
}

// DaysUntilDeadline returns full days left before the makeup deadline,
// clamped at zero. Returns nil unless the request is approved.
func (a *AbsenceRequest) DaysUntilDeadline(today time.Time) *int {
	if a.Status != StatusApproved || a.MakeupDeadline == nil {
		return nil
	}

	todayDate := DateOnly(today)
	deadlineDate := DateOnly(*a.MakeupDeadline)

	days := int(deadlineDate.Sub(todayDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// HoldsSeat returns true if the request occupies a seat in its makeup slot
func (a *AbsenceRequest) HoldsSeat() bool {
	return a.Status == StatusMakeupSelected || a.Status == StatusCompleted
}

// SameMonth returns true if both dates fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DateOnly truncates a timestamp to its calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthBounds returns the first day of t's month and the first day of the next month
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// MemberAbsencesFilter фильтр для получения заявок участника
type MemberAbsencesFilter struct {
	MemberID int64          // Обязательный параметр
	Status   *AbsenceStatus // Фильтр по статусу (опционально)
	SlotID   *int64         // Фильтр по слоту (опционально)
}
