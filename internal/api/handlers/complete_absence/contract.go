package complete_absence

import (
	"context"

	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

type AbsencesService interface {
	Complete(ctx context.Context, id int64) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
