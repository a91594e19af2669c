package expire_absences

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
)

// UseCase use case пакетного перевода просроченных заявок в expired
// Каждая заявка обрабатывается в отдельной транзакции: сбой одной
// не откатывает остальные
type UseCase struct {
	absenceRepo  AbsenceRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	// Защита от параллельных проходов в рамках одного процесса
	running sync.Mutex
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	absenceRepo AbsenceRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		absenceRepo:  absenceRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проход по одобренным заявкам с истёкшим сроком
// Идемпотентен: условный переход approved -> expired пропускает заявки,
// которые успели сменить статус между выборкой и обновлением
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	if !uc.running.TryLock() {
		uc.logger.Warn("ExpireAbsences: previous sweep still running, skipping")
		return nil, ErrSweepInProgress
	}
	defer uc.running.Unlock()

	now := uc.timeProvider.Now()
	uc.logger.Info("ExpireAbsences: sweep started, cutoff=%s", now.Format(time.RFC3339))

	overdue, err := uc.absenceRepo.ListOverdueApproved(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireAbsences: failed to list overdue absences: %v", err)
		return nil, fmt.Errorf("%w: failed to list overdue absences: %v", ErrInternal, err)
	}

	resp := &Response{ExpiredIDs: make([]int64, 0, len(overdue))}

	for _, absence := range overdue {
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			return uc.absenceRepo.Expire(txCtx, absence.ID)
		})
		if err != nil {
			if errors.Is(err, absenceRepo.ErrStatusConflict) {
				// Заявку успели обработать конкурентно, это не сбой
				uc.logger.Info("ExpireAbsences: absence id=%d already transitioned, skipping", absence.ID)
				continue
			}
			uc.logger.Error("ExpireAbsences: failed to expire absence id=%d: %v", absence.ID, err)
			resp.Failed++
			continue
		}

		resp.ExpiredIDs = append(resp.ExpiredIDs, absence.ID)
		uc.notifyClient.NotifyAsync(notifyservice.KindAbsenceExpired, absence)
	}

	uc.logger.Info("ExpireAbsences: sweep finished, expired=%d, failed=%d",
		len(resp.ExpiredIDs), resp.Failed)

	return resp, nil
}
