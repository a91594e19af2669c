package absences

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
)

// AbsenceRepository интерфейс репозитория заявок
type AbsenceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error)
	GetByMember(ctx context.Context, filter domain.MemberAbsencesFilter) ([]*domain.AbsenceRequest, error)
	Approve(ctx context.Context, id, approvedBy int64, notes *string, approvedAt, deadline time.Time) error
	Reject(ctx context.Context, id, rejectedBy int64, notes string) error
	DeclineMakeup(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
}

// NotifyClient интерфейс клиента уведомлений
// Доставка fire-and-forget: не возвращает ошибок вызывающему коду
type NotifyClient interface {
	NotifyAsync(kind notifyservice.NotificationKind, absence *domain.AbsenceRequest)
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
