package run_expiry_sweep

import (
	"context"

	expireAbsences "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/expire_absences"
)

type ExpireAbsencesUseCase interface {
	Execute(ctx context.Context) (*expireAbsences.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
