package domain

// Business rule constants
const (
	// MakeupDeadlineDays срок выбора замены после одобрения заявки
	MakeupDeadlineDays = 7

	// MonthlyMakeupQuota максимум заявок участника в статусах
	// makeup_selected/completed на один календарный месяц
	MonthlyMakeupQuota = 2

	MaxReasonLength     = 500
	MaxAdminNotesLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SeatHoldingStatuses статусы заявок, занимающих место в слоте замены
// Используются при подсчёте оставшихся мест и месячной квоты
var SeatHoldingStatuses = []AbsenceStatus{
	StatusMakeupSelected,
	StatusCompleted,
}

// OpenStatuses статусы, из которых ещё возможен переход
var OpenStatuses = []AbsenceStatus{
	StatusPending,
	StatusApproved,
	StatusMakeupSelected,
}

// ValidStatuses все допустимые статусы заявки
var ValidStatuses = []AbsenceStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusMakeupSelected,
	StatusCompleted,
	StatusExpired,
	StatusNoMakeup,
}

// IsValidStatus возвращает true для известного статуса заявки
func IsValidStatus(s AbsenceStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
