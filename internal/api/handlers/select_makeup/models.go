package select_makeup

import (
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	selectMakeup "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/select_makeup"
)

// SelectMakeupRequest HTTP request model
type SelectMakeupRequest struct {
	MakeupSlotID int64  `json:"makeupSlotId"`
	MakeupDate   string `json:"makeupDate"` // "2026-09-22"
}

// MakeupSelectedResponse HTTP response model
type MakeupSelectedResponse struct {
	ID             int64   `json:"id"`
	MemberID       int64   `json:"memberId"`
	SlotID         int64   `json:"slotId"`
	AbsentDate     string  `json:"absentDate"`
	Status         string  `json:"status"`
	MakeupSlotID   *int64  `json:"makeupSlotId,omitempty"`
	MakeupDate     *string `json:"makeupDate,omitempty"`
	MakeupDeadline *string `json:"makeupDeadline,omitempty"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectMakeupRequest) ToUseCaseRequest(absenceID, memberID int64) (*selectMakeup.Request, error) {
	makeupDate, err := time.Parse(domain.DateFormat, r.MakeupDate)
	if err != nil {
		return nil, err
	}

	return &selectMakeup.Request{
		AbsenceID:  absenceID,
		MemberID:   memberID,
		MakeupSlot: r.MakeupSlotID,
		MakeupDate: makeupDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectMakeup.Response) *MakeupSelectedResponse {
	out := &MakeupSelectedResponse{
		ID:           resp.ID,
		MemberID:     resp.MemberID,
		SlotID:       resp.SlotID,
		AbsentDate:   resp.AbsentDate.Format(domain.DateFormat),
		Status:       resp.Status,
		MakeupSlotID: resp.MakeupSlotID,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.MakeupDate != nil {
		s := resp.MakeupDate.Format(domain.DateFormat)
		out.MakeupDate = &s
	}
	if resp.MakeupDeadline != nil {
		s := resp.MakeupDeadline.Format(time.RFC3339)
		out.MakeupDeadline = &s
	}
	return out
}
