package expire_absences

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
)

// AbsenceRepository интерфейс репозитория заявок
type AbsenceRepository interface {
	ListOverdueApproved(ctx context.Context, before time.Time) ([]*domain.AbsenceRequest, error)
	Expire(ctx context.Context, id int64) error
}

// NotifyClient интерфейс клиента уведомлений
type NotifyClient interface {
	NotifyAsync(kind notifyservice.NotificationKind, absence *domain.AbsenceRequest)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
