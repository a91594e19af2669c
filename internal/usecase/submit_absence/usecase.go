package submit_absence

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
	memberClient "github.com/m04kA/SMC-ClubScheduleService/internal/integrations/memberservice"
)

// UseCase use case подачи заявки о пропуске занятия
type UseCase struct {
	absenceRepo  AbsenceRepository
	slotRepo     SlotRepository
	memberClient MemberServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	absenceRepo AbsenceRepository,
	slotRepo SlotRepository,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		absenceRepo:  absenceRepo,
		slotRepo:     slotRepo,
		memberClient: memberClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подачи заявки
// Результат - заявка в статусе pending, ожидающая решения админа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitAbsence: member=%d, slot=%d, date=%s",
		req.MemberID, req.SlotID, req.AbsentDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitAbsence: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем участника в MemberService
	// При недоступности сервиса полагаемся на локальную проверку назначения
	member, err := uc.memberClient.GetMemberWithGracefulDegradation(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("SubmitAbsence: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		if !errors.Is(err, memberClient.ErrServiceDegraded) {
			uc.logger.Error("SubmitAbsence: failed to get member id=%d: %v", req.MemberID, err)
			return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
		}
		uc.logger.Warn("SubmitAbsence: member check degraded for member id=%d", req.MemberID)
	} else if !member.IsActive() {
		uc.logger.Warn("SubmitAbsence: member id=%d is not active, status=%s", req.MemberID, member.Status)
		return nil, ErrNotEnrolled
	}

	// 3. Проверяем существование слота
	if _, err := uc.slotRepo.GetByID(ctx, req.SlotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("SubmitAbsence: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("SubmitAbsence: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	var result *domain.AbsenceRequest

	// 4. Проверки и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Участник должен быть активно назначен на слот
		enrolled, err := uc.slotRepo.HasActiveAssignment(txCtx, req.MemberID, req.SlotID)
		if err != nil {
			uc.logger.Error("SubmitAbsence: failed to check assignment: %v", err)
			return fmt.Errorf("%w: failed to check assignment: %v", ErrInternal, err)
		}
		if !enrolled {
			uc.logger.Warn("SubmitAbsence: member=%d has no active assignment to slot=%d",
				req.MemberID, req.SlotID)
			return ErrNotEnrolled
		}

		// 4.2. Вторая заявка на тот же пропуск не допускается
		exists, err := uc.absenceRepo.HasActiveForOccurrence(txCtx, req.MemberID, req.SlotID, domain.DateOnly(req.AbsentDate))
		if err != nil {
			uc.logger.Error("SubmitAbsence: failed to check duplicates: %v", err)
			return fmt.Errorf("%w: failed to check duplicates: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("SubmitAbsence: duplicate request for member=%d, slot=%d, date=%s",
				req.MemberID, req.SlotID, req.AbsentDate.Format(domain.DateFormat))
			return ErrDuplicateRequest
		}

		// 4.3. Создаем заявку
		// Уникальный индекс в БД закрывает гонку двух одновременных подач
		absence := &domain.AbsenceRequest{
			MemberID:   req.MemberID,
			SlotID:     req.SlotID,
			AbsentDate: domain.DateOnly(req.AbsentDate),
			Reason:     req.Reason,
			Status:     domain.StatusPending,
		}

		created, err := uc.absenceRepo.Create(txCtx, absence)
		if err != nil {
			if errors.Is(err, absenceRepo.ErrDuplicateAbsence) {
				return ErrDuplicateRequest
			}
			uc.logger.Error("SubmitAbsence: failed to create absence: %v", err)
			return fmt.Errorf("%w: failed to create absence: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitAbsence: successfully created absence id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		MemberID:   result.MemberID,
		SlotID:     result.SlotID,
		AbsentDate: result.AbsentDate,
		Reason:     result.Reason,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
