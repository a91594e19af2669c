package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
)

// SlotRepository интерфейс реестра слотов и назначений
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSlot, error)
	ActiveAssignmentCount(ctx context.Context, slotID int64) (int, error)
}

// OverrideRepository интерфейс календарных слоёв отмен
type OverrideRepository interface {
	HolidaysOn(ctx context.Context, date time.Time) ([]*domain.Holiday, error)
	CancellationFor(ctx context.Context, slotID int64, date time.Time) (*domain.SlotCancellation, error)
	SpecialBookingsCovering(ctx context.Context, venueID int64, date time.Time) ([]*domain.SpecialBooking, error)
}

// AbsenceRepository интерфейс заявок (нужен только подсчёт занятых мест)
type AbsenceRepository interface {
	CountSeatHoldersForSlot(ctx context.Context, slotID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
