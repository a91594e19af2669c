package get_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/service/schedule"
)

type ScheduleService interface {
	Occurs(ctx context.Context, slotID int64, date time.Time) (*schedule.Availability, error)
	Remaining(ctx context.Context, slotID int64) (*int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
