package absences

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

// Service сервис простых переходов workflow заявок:
// решения админа, отказ от замены, подтверждение отработки, срок до дедлайна
// Переходы с проверкой вместимости живут в usecase select_makeup
type Service struct {
	absenceRepo  AbsenceRepository
	notifyClient NotifyClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	absenceRepo AbsenceRepository,
	notifyClient NotifyClient,
	logger Logger,
) *Service {
	return &Service{
		absenceRepo:  absenceRepo,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AbsenceResponse, error) {
	absence, err := s.fetch(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainAbsence(absence), nil
}

// GetMemberAbsences получает заявки участника с опциональной фильтрацией по статусу
func (s *Service) GetMemberAbsences(ctx context.Context, req *models.GetMemberAbsencesRequest) (*models.AbsenceListResponse, error) {
	s.logger.Info("GetMemberAbsences: fetching absences for member=%d, status=%v", req.MemberID, req.Status)

	filter := domain.MemberAbsencesFilter{
		MemberID: req.MemberID,
		SlotID:   req.SlotID,
	}
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMemberAbsences: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	absences, err := s.absenceRepo.GetByMember(ctx, filter)
	if err != nil {
		s.logger.Error("GetMemberAbsences: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberAbsences - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMemberAbsences: successfully fetched %d absences for member=%d", len(absences), req.MemberID)
	return models.FromDomainAbsenceList(absences), nil
}

// Approve одобряет заявку: pending -> approved
// Фиксирует админа, момент одобрения и срок выбора замены
// (approved_at + 7 дней); отправляет уведомление участнику
func (s *Service) Approve(ctx context.Context, id int64, req *models.DecideAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("Approve: approving absence id=%d by admin=%d", id, req.AdminID)

	absence, err := s.fetch(ctx, id, "Approve")
	if err != nil {
		return nil, err
	}

	if !absence.CanBeDecided() {
		s.logger.Warn("Approve: absence id=%d cannot be approved, status=%s", id, absence.Status)
		return nil, ErrInvalidTransition
	}

	now := s.timeProvider.Now()
	deadline := now.AddDate(0, 0, domain.MakeupDeadlineDays)

	if err := s.absenceRepo.Approve(ctx, id, req.AdminID, req.AdminNotes, now, deadline); err != nil {
		// Конкурентный переход успел раньше - статус уже не pending
		if errors.Is(err, absenceRepo.ErrStatusConflict) {
			s.logger.Warn("Approve: concurrent transition on absence id=%d", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Approve: repository error for absence id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	updated, err := s.fetch(ctx, id, "Approve")
	if err != nil {
		return nil, err
	}

	s.notifyClient.NotifyAsync(notifyservice.KindAbsenceApproved, updated)

	s.logger.Info("Approve: absence id=%d approved, makeup deadline=%s",
		id, deadline.Format(domain.DateFormat))
	return models.FromDomainAbsence(updated), nil
}

// Reject отклоняет заявку: pending -> rejected
// Комментарий админа обязателен - участник должен понимать причину отказа
func (s *Service) Reject(ctx context.Context, id int64, req *models.DecideAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("Reject: rejecting absence id=%d by admin=%d", id, req.AdminID)

	if req.AdminNotes == nil || *req.AdminNotes == "" {
		s.logger.Warn("Reject: missing admin notes for absence id=%d", id)
		return nil, fmt.Errorf("%w: admin notes are required for rejection", ErrInvalidInput)
	}

	absence, err := s.fetch(ctx, id, "Reject")
	if err != nil {
		return nil, err
	}

	if !absence.CanBeDecided() {
		s.logger.Warn("Reject: absence id=%d cannot be rejected, status=%s", id, absence.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.absenceRepo.Reject(ctx, id, req.AdminID, *req.AdminNotes); err != nil {
		if errors.Is(err, absenceRepo.ErrStatusConflict) {
			s.logger.Warn("Reject: concurrent transition on absence id=%d", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Reject: repository error for absence id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	updated, err := s.fetch(ctx, id, "Reject")
	if err != nil {
		return nil, err
	}

	s.notifyClient.NotifyAsync(notifyservice.KindAbsenceRejected, updated)

	s.logger.Info("Reject: absence id=%d rejected", id)
	return models.FromDomainAbsence(updated), nil
}

// DeclineMakeup отказ участника от замены: approved -> no_makeup
// Разрешён только владельцу заявки и только до истечения срока
func (s *Service) DeclineMakeup(ctx context.Context, id, memberID int64) (*models.AbsenceResponse, error) {
	s.logger.Info("DeclineMakeup: member=%d declining makeup for absence id=%d", memberID, id)

	absence, err := s.fetch(ctx, id, "DeclineMakeup")
	if err != nil {
		return nil, err
	}

	if absence.MemberID != memberID {
		s.logger.Warn("DeclineMakeup: member=%d is not the owner of absence id=%d", memberID, id)
		return nil, ErrAccessDenied
	}

	if !absence.CanSelectMakeup() {
		s.logger.Warn("DeclineMakeup: absence id=%d is not approved, status=%s", id, absence.Status)
		return nil, ErrInvalidTransition
	}

	if absence.IsDeadlinePassed(s.timeProvider.Now()) {
		s.logger.Warn("DeclineMakeup: deadline passed for absence id=%d", id)
		return nil, ErrDeadlineExpired
	}

	if err := s.absenceRepo.DeclineMakeup(ctx, id); err != nil {
		if errors.Is(err, absenceRepo.ErrStatusConflict) {
			s.logger.Warn("DeclineMakeup: concurrent transition on absence id=%d", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("DeclineMakeup: repository error for absence id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: DeclineMakeup - repository error: %v", ErrInternal, err)
	}

	updated, err := s.fetch(ctx, id, "DeclineMakeup")
	if err != nil {
		return nil, err
	}

	s.logger.Info("DeclineMakeup: absence id=%d moved to no_makeup", id)
	return models.FromDomainAbsence(updated), nil
}

// Complete подтверждает отработанную замену: makeup_selected -> completed
// Административное подтверждение; дата замены в будущем не блокирует
// операцию, но логируется - у админа есть право на ручную корректировку
func (s *Service) Complete(ctx context.Context, id int64) (*models.AbsenceResponse, error) {
	s.logger.Info("Complete: completing absence id=%d", id)

	absence, err := s.fetch(ctx, id, "Complete")
	if err != nil {
		return nil, err
	}

	if !absence.CanBeCompleted() {
		s.logger.Warn("Complete: absence id=%d cannot be completed, status=%s", id, absence.Status)
		return nil, ErrInvalidTransition
	}

	if absence.MakeupDate != nil && domain.DateOnly(*absence.MakeupDate).After(domain.DateOnly(s.timeProvider.Now())) {
		s.logger.Warn("Complete: makeup date %s for absence id=%d is still in the future",
			absence.MakeupDate.Format(domain.DateFormat), id)
	}

	if err := s.absenceRepo.Complete(ctx, id); err != nil {
		if errors.Is(err, absenceRepo.ErrStatusConflict) {
			s.logger.Warn("Complete: concurrent transition on absence id=%d", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Complete: repository error for absence id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	updated, err := s.fetch(ctx, id, "Complete")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: absence id=%d completed", id)
	return models.FromDomainAbsence(updated), nil
}

// DaysRemaining возвращает количество полных дней до срока выбора замены
// nil, если заявка не в статусе approved
func (s *Service) DaysRemaining(ctx context.Context, id int64) (*int, error) {
	absence, err := s.fetch(ctx, id, "DaysRemaining")
	if err != nil {
		return nil, err
	}
	return absence.DaysUntilDeadline(s.timeProvider.Now()), nil
}

// fetch получает заявку и транслирует ошибку репозитория в ошибку сервиса
func (s *Service) fetch(ctx context.Context, id int64, op string) (*domain.AbsenceRequest, error) {
	absence, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("%s: absence id=%d not found", op, id)
			return nil, ErrAbsenceNotFound
		}
		s.logger.Error("%s: repository error for absence id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return absence, nil
}
