package approve_absence

import "github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"

// ApproveAbsenceRequest HTTP request model
type ApproveAbsenceRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ApproveAbsenceRequest) ToServiceRequest(adminID int64) *models.DecideAbsenceRequest {
	return &models.DecideAbsenceRequest{
		AdminID:    adminID,
		AdminNotes: r.AdminNotes,
	}
}
