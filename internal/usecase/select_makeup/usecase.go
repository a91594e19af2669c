package select_makeup

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/txmanager"
)

// UseCase use case выбора замены пропущенного занятия
// Проверки идут в фиксированном порядке, побеждает первая ошибка:
// статус -> срок -> месяц -> занятие идёт -> квота -> свободные места
type UseCase struct {
	absenceRepo  AbsenceRepository
	slotRepo     SlotRepository
	scheduleSvc  ScheduleService
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	absenceRepo AbsenceRepository,
	slotRepo SlotRepository,
	scheduleSvc ScheduleService,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		absenceRepo:  absenceRepo,
		slotRepo:     slotRepo,
		scheduleSvc:  scheduleSvc,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case выбора замены
// Проверка мест и резервирование выполняются в одной сериализуемой
// транзакции: две конкурентные заявки не могут забрать последнее место
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectMakeup: absence=%d, member=%d, slot=%d, date=%s",
		req.AbsenceID, req.MemberID, req.MakeupSlot, req.MakeupDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectMakeup: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	makeupDate := domain.DateOnly(req.MakeupDate)

	var result *domain.AbsenceRequest
	var expired *domain.AbsenceRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем заявку с блокировкой строки
		absence, err := uc.absenceRepo.GetByID(txCtx, req.AbsenceID)
		if err != nil {
			if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
				uc.logger.Warn("SelectMakeup: absence id=%d not found", req.AbsenceID)
				return ErrAbsenceNotFound
			}
			uc.logger.Error("SelectMakeup: failed to get absence id=%d: %v", req.AbsenceID, err)
			return fmt.Errorf("%w: failed to get absence: %v", ErrInternal, err)
		}

		// 3. Замену выбирает только владелец заявки
		if absence.MemberID != req.MemberID {
			uc.logger.Warn("SelectMakeup: member=%d is not the owner of absence id=%d",
				req.MemberID, req.AbsenceID)
			return ErrAccessDenied
		}

		// 4. Заявка должна быть одобрена
		if !absence.CanSelectMakeup() {
			uc.logger.Warn("SelectMakeup: absence id=%d is not approved, status=%s",
				req.AbsenceID, absence.Status)
			return ErrInvalidTransition
		}

		// 5. Срок выбора замены
		// Переход в expired выполняется после выхода из транзакции: возврат
		// ошибки из closure откатывает всё, что в ней сделано
		if absence.IsDeadlinePassed(now) {
			uc.logger.Warn("SelectMakeup: deadline passed for absence id=%d", req.AbsenceID)
			expired = absence
			return ErrDeadlineExpired
		}

		// 6. Дата замены в календарном месяце пропуска
		if !domain.SameMonth(makeupDate, absence.AbsentDate) {
			uc.logger.Warn("SelectMakeup: makeup date %s is outside the month of absence date %s",
				makeupDate.Format(domain.DateFormat), absence.AbsentDate.Format(domain.DateFormat))
			return ErrCrossMonthNotAllowed
		}

		// Замена не может совпадать с пропускаемым занятием
		if req.MakeupSlot == absence.SlotID && makeupDate.Equal(domain.DateOnly(absence.AbsentDate)) {
			uc.logger.Warn("SelectMakeup: makeup equals the missed occurrence for absence id=%d", req.AbsenceID)
			return ErrSameSlot
		}

		// 7. Занятие слота замены должно идти в выбранную дату
		slot, err := uc.slotRepo.GetByID(txCtx, req.MakeupSlot)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("SelectMakeup: slot id=%d not found", req.MakeupSlot)
				return ErrSlotNotFound
			}
			uc.logger.Error("SelectMakeup: failed to get slot id=%d: %v", req.MakeupSlot, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		availability, err := uc.scheduleSvc.OccursSlot(txCtx, slot, makeupDate)
		if err != nil {
			uc.logger.Error("SelectMakeup: availability check failed for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !availability.Runs {
			uc.logger.Warn("SelectMakeup: slot id=%d does not run on %s: %s",
				slot.ID, makeupDate.Format(domain.DateFormat), *availability.Reason)
			return ErrSlotNotRunning
		}

		// 8. Месячная квота замен (сама заявка исключается из подсчёта)
		monthStart, monthEnd := domain.MonthBounds(absence.AbsentDate)
		quotaUsed, err := uc.absenceRepo.CountSeatHoldersForMonth(txCtx, absence.MemberID, monthStart, monthEnd, absence.ID)
		if err != nil {
			uc.logger.Error("SelectMakeup: quota check failed for member=%d: %v", absence.MemberID, err)
			return fmt.Errorf("%w: quota check failed: %v", ErrInternal, err)
		}
		if quotaUsed >= domain.MonthlyMakeupQuota {
			uc.logger.Warn("SelectMakeup: monthly quota exceeded for member=%d, used=%d",
				absence.MemberID, quotaUsed)
			return ErrMonthlyQuotaExceeded
		}

		// 9. Свободные места в слоте замены
		remaining, err := uc.scheduleSvc.RemainingSlot(txCtx, slot)
		if err != nil {
			uc.logger.Error("SelectMakeup: capacity check failed for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
		}
		if remaining != nil && *remaining <= 0 {
			uc.logger.Warn("SelectMakeup: slot id=%d is full", slot.ID)
			return ErrSlotFull
		}

		// 10. Резервируем место условным переходом approved -> makeup_selected
		if err := uc.absenceRepo.SetMakeup(txCtx, absence.ID, slot.ID, makeupDate); err != nil {
			if errors.Is(err, absenceRepo.ErrStatusConflict) {
				uc.logger.Warn("SelectMakeup: concurrent transition on absence id=%d", absence.ID)
				return ErrInvalidTransition
			}
			uc.logger.Error("SelectMakeup: failed to set makeup for absence id=%d: %v", absence.ID, err)
			return fmt.Errorf("%w: failed to set makeup: %v", ErrInternal, err)
		}

		updated, err := uc.absenceRepo.GetByID(txCtx, absence.ID)
		if err != nil {
			uc.logger.Error("SelectMakeup: failed to reload absence id=%d: %v", absence.ID, err)
			return fmt.Errorf("%w: failed to reload absence: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	// Истёкшую заявку сразу переводим в expired, не дожидаясь sweep.
	// Переход коммитится в собственной транзакции, уведомление уходит
	// только после успешного коммита
	if expired != nil && errors.Is(err, ErrDeadlineExpired) {
		expireErr := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			return uc.absenceRepo.Expire(txCtx, expired.ID)
		})
		switch {
		case expireErr == nil:
			uc.notifyClient.NotifyAsync(notifyservice.KindAbsenceExpired, expired)
		case errors.Is(expireErr, absenceRepo.ErrStatusConflict):
			// Заявку успели обработать конкурентно, уведомлять не о чем
			uc.logger.Info("SelectMakeup: absence id=%d already transitioned, skipping expire", expired.ID)
		default:
			// Заявка осталась approved, её подберёт следующий sweep
			uc.logger.Error("SelectMakeup: failed to expire absence id=%d: %v", expired.ID, expireErr)
		}
	}

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("SelectMakeup: serialization retries exhausted for absence id=%d", req.AbsenceID)
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.notifyClient.NotifyAsync(notifyservice.KindMakeupSelected, result)

	uc.logger.Info("SelectMakeup: absence id=%d moved to makeup_selected, slot=%d, date=%s",
		result.ID, req.MakeupSlot, makeupDate.Format(domain.DateFormat))

	return &Response{
		ID:             result.ID,
		MemberID:       result.MemberID,
		SlotID:         result.SlotID,
		AbsentDate:     result.AbsentDate,
		Status:         string(result.Status),
		MakeupSlotID:   result.MakeupSlotID,
		MakeupDate:     result.MakeupDate,
		MakeupDeadline: result.MakeupDeadline,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
