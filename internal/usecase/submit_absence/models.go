package submit_absence

import "time"

// Request модель запроса на создание заявки о пропуске
type Request struct {
	MemberID   int64     // ID участника
	SlotID     int64     // ID слота, занятие которого пропускается
	AbsentDate time.Time // Дата пропускаемого занятия (без времени)
	Reason     *string   // Причина пропуска (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID         int64
	MemberID   int64
	SlotID     int64
	AbsentDate time.Time
	Reason     *string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
