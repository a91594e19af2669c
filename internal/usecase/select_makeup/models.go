package select_makeup

import "time"

// Request модель запроса на выбор замены
type Request struct {
	AbsenceID  int64     // ID заявки в статусе approved
	MemberID   int64     // ID участника (владелец заявки)
	MakeupSlot int64     // ID слота замены
	MakeupDate time.Time // Дата занятия замены (без времени)
}

// Response модель ответа с обновлённой заявкой
type Response struct {
	ID             int64
	MemberID       int64
	SlotID         int64
	AbsentDate     time.Time
	Status         string
	MakeupSlotID   *int64
	MakeupDate     *time.Time
	MakeupDeadline *time.Time
	UpdatedAt      time.Time
}
