package handlers

import (
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

// AbsenceBody HTTP представление заявки о пропуске
// Общее для всех handlers, возвращающих заявку
type AbsenceBody struct {
	ID         int64   `json:"id"`
	MemberID   int64   `json:"memberId"`
	SlotID     int64   `json:"slotId"`
	AbsentDate string  `json:"absentDate"`
	Reason     *string `json:"reason,omitempty"`
	Status     string  `json:"status"`

	ApprovedBy *int64  `json:"approvedBy,omitempty"`
	ApprovedAt *string `json:"approvedAt,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`

	MakeupSlotID   *int64  `json:"makeupSlotId,omitempty"`
	MakeupDate     *string `json:"makeupDate,omitempty"`
	MakeupDeadline *string `json:"makeupDeadline,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromAbsence конвертирует модель сервиса в HTTP представление
func FromAbsence(a *models.AbsenceResponse) *AbsenceBody {
	return &AbsenceBody{
		ID:             a.ID,
		MemberID:       a.MemberID,
		SlotID:         a.SlotID,
		AbsentDate:     a.AbsentDate.Format(domain.DateFormat),
		Reason:         a.Reason,
		Status:         a.Status,
		ApprovedBy:     a.ApprovedBy,
		ApprovedAt:     formatTimePtr(a.ApprovedAt, time.RFC3339),
		AdminNotes:     a.AdminNotes,
		MakeupSlotID:   a.MakeupSlotID,
		MakeupDate:     formatTimePtr(a.MakeupDate, domain.DateFormat),
		MakeupDeadline: formatTimePtr(a.MakeupDeadline, time.RFC3339),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromAbsenceList конвертирует список моделей сервиса
func FromAbsenceList(list *models.AbsenceListResponse) []*AbsenceBody {
	out := make([]*AbsenceBody, len(list.Absences))
	for i, a := range list.Absences {
		out[i] = FromAbsence(a)
	}
	return out
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
