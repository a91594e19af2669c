package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
)

// DecideAbsenceRequest модель решения админа по заявке
type DecideAbsenceRequest struct {
	AdminID    int64
	AdminNotes *string
}

// GetMemberAbsencesRequest модель запроса заявок участника
type GetMemberAbsencesRequest struct {
	MemberID int64
	Status   *string
	SlotID   *int64
}

// AbsenceResponse модель заявки для внешних слоёв
type AbsenceResponse struct {
	ID         int64
	MemberID   int64
	SlotID     int64
	AbsentDate time.Time
	Reason     *string
	Status     string

	ApprovedBy *int64
	ApprovedAt *time.Time
	AdminNotes *string

	MakeupSlotID   *int64
	MakeupDate     *time.Time
	MakeupDeadline *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaysUntilDeadline возвращает остаток полных дней до срока выбора замены
// nil, если заявка не в статусе approved
func (r *AbsenceResponse) DaysUntilDeadline(today time.Time) *int {
	a := domain.AbsenceRequest{
		Status:         domain.AbsenceStatus(r.Status),
		MakeupDeadline: r.MakeupDeadline,
	}
	return a.DaysUntilDeadline(today)
}

// AbsenceListResponse список заявок
type AbsenceListResponse struct {
	Absences []*AbsenceResponse
	Total    int
}

// FromDomainAbsence конвертирует доменную заявку в response
func FromDomainAbsence(a *domain.AbsenceRequest) *AbsenceResponse {
	return &AbsenceResponse{
		ID:             a.ID,
		MemberID:       a.MemberID,
		SlotID:         a.SlotID,
		AbsentDate:     a.AbsentDate,
		Reason:         a.Reason,
		Status:         string(a.Status),
		ApprovedBy:     a.ApprovedBy,
		ApprovedAt:     a.ApprovedAt,
		AdminNotes:     a.AdminNotes,
		MakeupSlotID:   a.MakeupSlotID,
		MakeupDate:     a.MakeupDate,
		MakeupDeadline: a.MakeupDeadline,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAbsenceList конвертирует список доменных заявок
func FromDomainAbsenceList(absences []*domain.AbsenceRequest) *AbsenceListResponse {
	out := make([]*AbsenceResponse, len(absences))
	for i, a := range absences {
		out[i] = FromDomainAbsence(a)
	}
	return &AbsenceListResponse{
		Absences: out,
		Total:    len(out),
	}
}

// ToDomainStatus конвертирует строковый статус в доменный
func ToDomainStatus(s string) (domain.AbsenceStatus, error) {
	status := domain.AbsenceStatus(s)
	if !domain.IsValidStatus(status) {
		return "", fmt.Errorf("unknown absence status %q", s)
	}
	return status, nil
}
