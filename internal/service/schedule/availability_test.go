package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/types"
)

type mockSlotRepo struct {
	slot            *domain.ClassSlot
	getErr          error
	assignmentCount int
	assignmentErr   error
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.ClassSlot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.slot, nil
}

func (m *mockSlotRepo) ActiveAssignmentCount(ctx context.Context, slotID int64) (int, error) {
	if m.assignmentErr != nil {
		return 0, m.assignmentErr
	}
	return m.assignmentCount, nil
}

type mockOverrideRepo struct {
	holidays     []*domain.Holiday
	holidaysErr  error
	cancellation *domain.SlotCancellation
	bookings     []*domain.SpecialBooking
}

func (m *mockOverrideRepo) HolidaysOn(ctx context.Context, date time.Time) ([]*domain.Holiday, error) {
	if m.holidaysErr != nil {
		return nil, m.holidaysErr
	}
	return m.holidays, nil
}

func (m *mockOverrideRepo) CancellationFor(ctx context.Context, slotID int64, date time.Time) (*domain.SlotCancellation, error) {
	return m.cancellation, nil
}

func (m *mockOverrideRepo) SpecialBookingsCovering(ctx context.Context, venueID int64, date time.Time) ([]*domain.SpecialBooking, error) {
	return m.bookings, nil
}

type mockAbsenceCounter struct {
	seatHolders int
	err         error
}

func (m *mockAbsenceCounter) CountSeatHoldersForSlot(ctx context.Context, slotID int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.seatHolders, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// tuesdaySlot returns an active weekly slot on Tuesday 18:00-19:30
func tuesdaySlot() *domain.ClassSlot {
	return &domain.ClassSlot{
		ID:        1,
		ProgramID: 10,
		VenueID:   100,
		DayOfWeek: time.Tuesday,
		StartTime: types.TimeString("18:00"),
		EndTime:   types.TimeString("19:30"),
		IsActive:  true,
	}
}

// tuesday 2026-09-15
var tuesday = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func TestOccursSlot_Runs(t *testing.T) {
	svc := NewService(&mockSlotRepo{}, &mockOverrideRepo{}, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	assert.True(t, av.Runs)
	assert.Nil(t, av.Reason)
	assert.Equal(t, int64(1), av.SlotID)
}

func TestOccursSlot_OutsideValidity(t *testing.T) {
	slot := tuesdaySlot()
	slot.ValidTo = ptr.Ptr(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	svc := NewService(&mockSlotRepo{}, &mockOverrideRepo{}, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), slot, tuesday)
	require.NoError(t, err)
	assert.False(t, av.Runs)
	require.NotNil(t, av.Reason)
	assert.Equal(t, ReasonOutsideValidity, *av.Reason)
}

func TestOccursSlot_WrongWeekday(t *testing.T) {
	svc := NewService(&mockSlotRepo{}, &mockOverrideRepo{}, &mockAbsenceCounter{}, nopLogger{})

	wednesday := tuesday.AddDate(0, 0, 1)
	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), wednesday)
	require.NoError(t, err)
	assert.False(t, av.Runs)
	require.NotNil(t, av.Reason)
	assert.Equal(t, ReasonNotScheduled, *av.Reason)
}

func TestOccursSlot_InactiveSlot(t *testing.T) {
	slot := tuesdaySlot()
	slot.IsActive = false

	svc := NewService(&mockSlotRepo{}, &mockOverrideRepo{}, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), slot, tuesday)
	require.NoError(t, err)
	assert.False(t, av.Runs)
	require.NotNil(t, av.Reason)
	assert.Equal(t, ReasonSlotInactive, *av.Reason)
}

func TestOccursSlot_Holiday(t *testing.T) {
	overrides := &mockOverrideRepo{
		holidays: []*domain.Holiday{
			{Name: "Club Day", Date: tuesday},
		},
	}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	assert.False(t, av.Runs)
	require.NotNil(t, av.Reason)
	assert.Equal(t, "holiday: Club Day", *av.Reason)
}

func TestOccursSlot_SlotCancellation(t *testing.T) {
	overrides := &mockOverrideRepo{
		cancellation: &domain.SlotCancellation{
			SlotID: 1,
			Date:   tuesday,
			Reason: ptr.Ptr("coach is ill"),
		},
	}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	assert.False(t, av.Runs)
	require.NotNil(t, av.Reason)
	assert.Equal(t, "slot cancelled: coach is ill", *av.Reason)
}

func TestOccursSlot_SpecialBooking(t *testing.T) {
	overrides := &mockOverrideRepo{
		bookings: []*domain.SpecialBooking{
			{
				Title:          "Regional Tournament",
				StartDate:      tuesday,
				EndDate:        tuesday,
				StartTime:      ptr.Ptr(types.TimeString("17:00")),
				EndTime:        ptr.Ptr(types.TimeString("21:00")),
				CancelsClasses: true,
			},
		},
	}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	assert.False(t, av.Runs)
	require.NotNil(t, av.Reason)
	assert.Equal(t, "special booking: Regional Tournament", *av.Reason)
}

func TestOccursSlot_SpecialBookingNotCancelling(t *testing.T) {
	overrides := &mockOverrideRepo{
		bookings: []*domain.SpecialBooking{
			{
				Title:          "Open Training",
				StartDate:      tuesday,
				EndDate:        tuesday,
				CancelsClasses: false,
			},
		},
	}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	assert.True(t, av.Runs)
}

func TestOccursSlot_SpecialBookingNoTimeOverlap(t *testing.T) {
	overrides := &mockOverrideRepo{
		bookings: []*domain.SpecialBooking{
			{
				Title:          "Morning Rental",
				StartDate:      tuesday,
				EndDate:        tuesday,
				StartTime:      ptr.Ptr(types.TimeString("08:00")),
				EndTime:        ptr.Ptr(types.TimeString("12:00")),
				CancelsClasses: true,
			},
		},
	}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	assert.True(t, av.Runs)
}

func TestOccursSlot_HolidayWinsOverCancellation(t *testing.T) {
	// Both layers match, the higher-priority holiday reason is reported
	overrides := &mockOverrideRepo{
		holidays: []*domain.Holiday{
			{Name: "Club Day", Date: tuesday},
		},
		cancellation: &domain.SlotCancellation{
			SlotID: 1,
			Date:   tuesday,
			Reason: ptr.Ptr("flooded hall"),
		},
	}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	av, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	require.NoError(t, err)
	require.NotNil(t, av.Reason)
	assert.Equal(t, "holiday: Club Day", *av.Reason)
}

func TestOccurs_SlotNotFound(t *testing.T) {
	slots := &mockSlotRepo{getErr: slotRepo.ErrSlotNotFound}
	svc := NewService(slots, &mockOverrideRepo{}, &mockAbsenceCounter{}, nopLogger{})

	_, err := svc.Occurs(context.Background(), 42, tuesday)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestOccursSlot_HolidayLookupFailure(t *testing.T) {
	overrides := &mockOverrideRepo{holidaysErr: errors.New("db down")}
	svc := NewService(&mockSlotRepo{}, overrides, &mockAbsenceCounter{}, nopLogger{})

	_, err := svc.OccursSlot(context.Background(), tuesdaySlot(), tuesday)
	assert.ErrorIs(t, err, ErrInternal)
}
