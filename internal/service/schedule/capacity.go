package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
)

// RemainingSlot считает свободные места слота:
// capacity - активные назначения - занятые заменами места
// Возвращает nil, когда вместимость слота не ограничена
// Результат никогда не отрицателен и не превышает capacity
func (s *Service) RemainingSlot(ctx context.Context, slot *domain.ClassSlot) (*int, error) {
	if !slot.HasCapacityLimit() {
		return nil, nil
	}

	assignments, err := s.slots.ActiveAssignmentCount(ctx, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: RemainingSlot - assignment count: %v", ErrInternal, err)
	}

	makeups, err := s.absences.CountSeatHoldersForSlot(ctx, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: RemainingSlot - makeup count: %v", ErrInternal, err)
	}

	remaining := *slot.Capacity - assignments - makeups
	if remaining < 0 {
		remaining = 0
	}
	if remaining > *slot.Capacity {
		remaining = *slot.Capacity
	}

	return &remaining, nil
}

// Remaining загружает слот по ID и считает свободные места
func (s *Service) Remaining(ctx context.Context, slotID int64) (*int, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Remaining - slot lookup: %v", ErrInternal, err)
	}
	return s.RemainingSlot(ctx, slot)
}

// IsFull возвращает true, когда свободных мест нет
// Слот без ограничения вместимости не бывает полным
func (s *Service) IsFull(ctx context.Context, slotID int64) (bool, error) {
	remaining, err := s.Remaining(ctx, slotID)
	if err != nil {
		return false, err
	}
	if remaining == nil {
		return false, nil
	}
	return *remaining == 0, nil
}
