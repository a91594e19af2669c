package select_makeup

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/schedule"
)

// AbsenceRepository интерфейс репозитория заявок
type AbsenceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error)
	CountSeatHoldersForMonth(ctx context.Context, memberID int64, monthStart, monthEnd time.Time, excludeID int64) (int, error)
	SetMakeup(ctx context.Context, id, makeupSlotID int64, makeupDate time.Time) error
	Expire(ctx context.Context, id int64) error
}

// SlotRepository интерфейс реестра слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSlot, error)
}

// ScheduleService интерфейс калькулятора доступности и учёта мест
type ScheduleService interface {
	OccursSlot(ctx context.Context, slot *domain.ClassSlot, date time.Time) (*schedule.Availability, error)
	RemainingSlot(ctx context.Context, slot *domain.ClassSlot) (*int, error)
}

// NotifyClient интерфейс клиента уведомлений
type NotifyClient interface {
	NotifyAsync(kind notifyservice.NotificationKind, absence *domain.AbsenceRequest)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
