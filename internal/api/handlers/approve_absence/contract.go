package approve_absence

import (
	"context"

	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

type AbsencesService interface {
	Approve(ctx context.Context, id int64, req *models.DecideAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
