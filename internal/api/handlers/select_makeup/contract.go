package select_makeup

import (
	"context"

	selectMakeup "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/select_makeup"
)

type SelectMakeupUseCase interface {
	Execute(ctx context.Context, req *selectMakeup.Request) (*selectMakeup.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
