package get_absence

import (
	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

// AbsenceDetailsResponse HTTP response model
// daysUntilDeadline присутствует только для одобренных заявок
type AbsenceDetailsResponse struct {
	*handlers.AbsenceBody
	DaysUntilDeadline *int `json:"daysUntilDeadline,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AbsenceResponse, daysRemaining *int) *AbsenceDetailsResponse {
	return &AbsenceDetailsResponse{
		AbsenceBody:       handlers.FromAbsence(resp),
		DaysUntilDeadline: daysRemaining,
	}
}
