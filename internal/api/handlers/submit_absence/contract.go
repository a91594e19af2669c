package submit_absence

import (
	"context"

	submitAbsence "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/submit_absence"
)

type SubmitAbsenceUseCase interface {
	Execute(ctx context.Context, req *submitAbsence.Request) (*submitAbsence.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
