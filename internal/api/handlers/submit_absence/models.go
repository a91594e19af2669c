package submit_absence

import (
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	submitAbsence "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/submit_absence"
)

// SubmitAbsenceRequest HTTP request model
type SubmitAbsenceRequest struct {
	SlotID     int64   `json:"slotId"`
	AbsentDate string  `json:"absentDate"` // "2026-09-15"
	Reason     *string `json:"reason,omitempty"`
}

// AbsenceCreatedResponse HTTP response model
type AbsenceCreatedResponse struct {
	ID         int64   `json:"id"`
	MemberID   int64   `json:"memberId"`
	SlotID     int64   `json:"slotId"`
	AbsentDate string  `json:"absentDate"`
	Reason     *string `json:"reason,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitAbsenceRequest) ToUseCaseRequest(memberID int64) (*submitAbsence.Request, error) {
	absentDate, err := time.Parse(domain.DateFormat, r.AbsentDate)
	if err != nil {
		return nil, err
	}

	return &submitAbsence.Request{
		MemberID:   memberID,
		SlotID:     r.SlotID,
		AbsentDate: absentDate,
		Reason:     r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitAbsence.Response) *AbsenceCreatedResponse {
	return &AbsenceCreatedResponse{
		ID:         resp.ID,
		MemberID:   resp.MemberID,
		SlotID:     resp.SlotID,
		AbsentDate: resp.AbsentDate.Format(domain.DateFormat),
		Reason:     resp.Reason,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
