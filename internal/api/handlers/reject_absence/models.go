package reject_absence

import "github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"

// RejectAbsenceRequest HTTP request model
// Комментарий админа обязателен при отклонении
type RejectAbsenceRequest struct {
	AdminNotes string `json:"adminNotes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RejectAbsenceRequest) ToServiceRequest(adminID int64) *models.DecideAbsenceRequest {
	return &models.DecideAbsenceRequest{
		AdminID:    adminID,
		AdminNotes: &r.AdminNotes,
	}
}
