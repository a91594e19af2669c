package get_member_absences

import (
	"context"

	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

type AbsencesService interface {
	GetMemberAbsences(ctx context.Context, req *models.GetMemberAbsencesRequest) (*models.AbsenceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
