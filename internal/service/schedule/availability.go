package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
)

// Причины отмены занятия, порядок проверок фиксирован:
// окно действия -> день недели -> праздник -> точечная отмена -> спецбронирование
const (
	ReasonOutsideValidity = "outside validity window"
	ReasonNotScheduled    = "not scheduled on this weekday"
	ReasonSlotInactive    = "slot is inactive"
)

// Availability результат расчёта: идёт ли занятие слота на дату
type Availability struct {
	SlotID int64
	Date   time.Time
	Runs   bool
	Reason *string // Причина отмены; nil, когда занятие идёт
}

// Cancelled строит результат "занятие не идёт" с причиной
func Cancelled(slotID int64, date time.Time, reason string) *Availability {
	return &Availability{SlotID: slotID, Date: date, Runs: false, Reason: &reason}
}

// Runs строит результат "занятие идёт"
func Runs(slotID int64, date time.Time) *Availability {
	return &Availability{SlotID: slotID, Date: date, Runs: true}
}

// Service калькулятор доступности и учёт мест
// Чистая функция над инжектированными read-only реестрами: сам ничего
// не пишет и детерминирован для неизменных слоёв отмен
type Service struct {
	slots     SlotRepository
	overrides OverrideRepository
	absences  AbsenceRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slots SlotRepository,
	overrides OverrideRepository,
	absences AbsenceRepository,
	logger Logger,
) *Service {
	return &Service{
		slots:     slots,
		overrides: overrides,
		absences:  absences,
		logger:    logger,
	}
}

// OccursSlot вычисляет, идёт ли занятие слота на дату
// Проверки применяются по порядку, побеждает первая сработавшая отмена;
// причины не сливаются - возвращается причина самого приоритетного слоя
func (s *Service) OccursSlot(ctx context.Context, slot *domain.ClassSlot, date time.Time) (*Availability, error) {
	// 1. Окно действия слота - жёсткая граница: такие даты никогда не бронируемы
	if !slot.IsWithinValidity(date) {
		return Cancelled(slot.ID, date, ReasonOutsideValidity), nil
	}

	// 2. День недели: занятие просто не запланировано на эту дату
	if !slot.IsScheduledOn(date) {
		return Cancelled(slot.ID, date, ReasonNotScheduled), nil
	}

	if !slot.IsActive {
		return Cancelled(slot.ID, date, ReasonSlotInactive), nil
	}

	// 3. Праздники отменяют все занятия клуба
	holidays, err := s.overrides.HolidaysOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: OccursSlot - holidays lookup: %v", ErrInternal, err)
	}
	for _, h := range holidays {
		if h.Matches(date) {
			return Cancelled(slot.ID, date, fmt.Sprintf("holiday: %s", h.Name)), nil
		}
	}

	// 4. Точечная отмена слота
	cancellation, err := s.overrides.CancellationFor(ctx, slot.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: OccursSlot - cancellation lookup: %v", ErrInternal, err)
	}
	if cancellation != nil {
		reason := ""
		if cancellation.Reason != nil {
			reason = *cancellation.Reason
		}
		return Cancelled(slot.ID, date, fmt.Sprintf("slot cancelled: %s", reason)), nil
	}

	// 5. Спецбронирования площадки
	bookings, err := s.overrides.SpecialBookingsCovering(ctx, slot.VenueID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: OccursSlot - special bookings lookup: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		if !b.CancelsClasses {
			continue
		}
		if b.OverlapsTime(slot.StartTime, slot.EndTime) {
			return Cancelled(slot.ID, date, fmt.Sprintf("special booking: %s", b.Title)), nil
		}
	}

	return Runs(slot.ID, date), nil
}

// Occurs загружает слот по ID и вычисляет доступность на дату
func (s *Service) Occurs(ctx context.Context, slotID int64, date time.Time) (*Availability, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Occurs - slot lookup: %v", ErrInternal, err)
	}
	return s.OccursSlot(ctx, slot, date)
}
