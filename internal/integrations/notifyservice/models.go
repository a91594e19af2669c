package notifyservice

// NotificationKind тип уведомления об изменении статуса заявки
type NotificationKind string

const (
	KindAbsenceApproved NotificationKind = "absence_approved"
	KindAbsenceRejected NotificationKind = "absence_rejected"
	KindMakeupSelected  NotificationKind = "makeup_selected"
	KindAbsenceExpired  NotificationKind = "absence_expired"
)

// notifyRequest тело запроса к NotifyService
type notifyRequest struct {
	Kind       string  `json:"kind"`
	MemberID   int64   `json:"member_id"`
	AbsenceID  int64   `json:"absence_id"`
	SlotID     int64   `json:"slot_id"`
	AbsentDate string  `json:"absent_date"`
	MakeupDate *string `json:"makeup_date,omitempty"`
	Deadline   *string `json:"makeup_deadline,omitempty"`
}
