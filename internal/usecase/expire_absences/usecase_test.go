package expire_absences

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/ptr"
)

type mockAbsenceRepo struct {
	overdue []*domain.AbsenceRequest
	listErr error

	expireErrs map[int64]error
	expired    []int64
}

func (m *mockAbsenceRepo) ListOverdueApproved(ctx context.Context, before time.Time) ([]*domain.AbsenceRequest, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.overdue, nil
}

func (m *mockAbsenceRepo) Expire(ctx context.Context, id int64) error {
	if err := m.expireErrs[id]; err != nil {
		return err
	}
	m.expired = append(m.expired, id)
	return nil
}

type mockNotifyClient struct {
	kinds []notifyservice.NotificationKind
}

func (m *mockNotifyClient) NotifyAsync(kind notifyservice.NotificationKind, absence *domain.AbsenceRequest) {
	m.kinds = append(m.kinds, kind)
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func overdueAbsence(id int64) *domain.AbsenceRequest {
	return &domain.AbsenceRequest{
		ID:             id,
		MemberID:       42,
		SlotID:         1,
		Status:         domain.StatusApproved,
		MakeupDeadline: ptr.Ptr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestExecute_ExpiresAllOverdue(t *testing.T) {
	repo := &mockAbsenceRepo{overdue: []*domain.AbsenceRequest{
		overdueAbsence(1), overdueAbsence(2), overdueAbsence(3),
	}}
	notify := &mockNotifyClient{}
	uc := NewUseCase(repo, notify, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, resp.ExpiredIDs)
	assert.Zero(t, resp.Failed)
	assert.Len(t, notify.kinds, 3)
	for _, kind := range notify.kinds {
		assert.Equal(t, notifyservice.KindAbsenceExpired, kind)
	}
}

func TestExecute_NothingOverdue(t *testing.T) {
	uc := NewUseCase(&mockAbsenceRepo{}, &mockNotifyClient{}, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.ExpiredIDs)
	assert.Zero(t, resp.Failed)
}

func TestExecute_FailedRequestDoesNotAbortBatch(t *testing.T) {
	repo := &mockAbsenceRepo{
		overdue:    []*domain.AbsenceRequest{overdueAbsence(1), overdueAbsence(2), overdueAbsence(3)},
		expireErrs: map[int64]error{2: errors.New("db down")},
	}
	notify := &mockNotifyClient{}
	uc := NewUseCase(repo, notify, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, resp.ExpiredIDs)
	assert.Equal(t, 1, resp.Failed)
	assert.Len(t, notify.kinds, 2)
}

func TestExecute_ConcurrentlyTransitionedRequestSkipped(t *testing.T) {
	// A request that lost its approved status between the listing and the
	// conditional update is not an error and not a failure
	repo := &mockAbsenceRepo{
		overdue:    []*domain.AbsenceRequest{overdueAbsence(1), overdueAbsence(2)},
		expireErrs: map[int64]error{1: absenceRepo.ErrStatusConflict},
	}
	notify := &mockNotifyClient{}
	uc := NewUseCase(repo, notify, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{2}, resp.ExpiredIDs)
	assert.Zero(t, resp.Failed)
	assert.Len(t, notify.kinds, 1)
}

func TestExecute_ListFailure(t *testing.T) {
	repo := &mockAbsenceRepo{listErr: errors.New("db down")}
	uc := NewUseCase(repo, &mockNotifyClient{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
