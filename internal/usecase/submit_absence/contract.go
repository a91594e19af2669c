package submit_absence

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/memberservice"
)

// AbsenceRepository интерфейс репозитория заявок
type AbsenceRepository interface {
	Create(ctx context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error)
	HasActiveForOccurrence(ctx context.Context, memberID, slotID int64, absentDate time.Time) (bool, error)
}

// SlotRepository интерфейс реестра слотов и назначений
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSlot, error)
	HasActiveAssignment(ctx context.Context, memberID, slotID int64) (bool, error)
}

// MemberServiceClient интерфейс клиента MemberService
type MemberServiceClient interface {
	GetMemberWithGracefulDegradation(ctx context.Context, memberID int64) (*memberservice.Member, error)
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
