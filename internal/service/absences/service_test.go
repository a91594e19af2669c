package absences

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/ptr"
)

type mockAbsenceRepo struct {
	absence *domain.AbsenceRequest
	list    []*domain.AbsenceRequest

	getErr        error
	transitionErr error

	approvedAt       *time.Time
	approvedDeadline *time.Time
	rejectedNotes    *string
	declined         bool
	completed        bool
}

func (m *mockAbsenceRepo) GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.absence, nil
}

func (m *mockAbsenceRepo) GetByMember(ctx context.Context, filter domain.MemberAbsencesFilter) ([]*domain.AbsenceRequest, error) {
	return m.list, nil
}

func (m *mockAbsenceRepo) Approve(ctx context.Context, id, approvedBy int64, notes *string, approvedAt, deadline time.Time) error {
	if m.transitionErr != nil {
		return m.transitionErr
	}
	m.approvedAt = &approvedAt
	m.approvedDeadline = &deadline
	m.absence.Status = domain.StatusApproved
	m.absence.ApprovedBy = &approvedBy
	m.absence.ApprovedAt = &approvedAt
	m.absence.MakeupDeadline = &deadline
	return nil
}

func (m *mockAbsenceRepo) Reject(ctx context.Context, id, rejectedBy int64, notes string) error {
	if m.transitionErr != nil {
		return m.transitionErr
	}
	m.rejectedNotes = &notes
	m.absence.Status = domain.StatusRejected
	return nil
}

func (m *mockAbsenceRepo) DeclineMakeup(ctx context.Context, id int64) error {
	if m.transitionErr != nil {
		return m.transitionErr
	}
	m.declined = true
	m.absence.Status = domain.StatusNoMakeup
	return nil
}

func (m *mockAbsenceRepo) Complete(ctx context.Context, id int64) error {
	if m.transitionErr != nil {
		return m.transitionErr
	}
	m.completed = true
	m.absence.Status = domain.StatusCompleted
	return nil
}

type mockNotifyClient struct {
	kinds []notifyservice.NotificationKind
}

func (m *mockNotifyClient) NotifyAsync(kind notifyservice.NotificationKind, absence *domain.AbsenceRequest) {
	m.kinds = append(m.kinds, kind)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mockAbsenceRepo, notify *mockNotifyClient) *Service {
	svc := NewService(repo, notify, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func pendingAbsence() *domain.AbsenceRequest {
	return &domain.AbsenceRequest{
		ID:         7,
		MemberID:   42,
		SlotID:     1,
		AbsentDate: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		Status:     domain.StatusPending,
	}
}

func TestApprove_SetsDeadlineSevenDaysOut(t *testing.T) {
	repo := &mockAbsenceRepo{absence: pendingAbsence()}
	notify := &mockNotifyClient{}
	svc := newTestService(repo, notify)

	resp, err := svc.Approve(context.Background(), 7, &models.DecideAbsenceRequest{AdminID: 99})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	require.NotNil(t, repo.approvedDeadline)
	assert.Equal(t, testNow.AddDate(0, 0, domain.MakeupDeadlineDays), *repo.approvedDeadline)
	assert.Equal(t, []notifyservice.NotificationKind{notifyservice.KindAbsenceApproved}, notify.kinds)
}

func TestApprove_OnlyPendingCanBeApproved(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusRejected
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.Approve(context.Background(), 7, &models.DecideAbsenceRequest{AdminID: 99})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApprove_ConcurrentTransition(t *testing.T) {
	repo := &mockAbsenceRepo{absence: pendingAbsence(), transitionErr: absenceRepo.ErrStatusConflict}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.Approve(context.Background(), 7, &models.DecideAbsenceRequest{AdminID: 99})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_RequiresAdminNotes(t *testing.T) {
	repo := &mockAbsenceRepo{absence: pendingAbsence()}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.Reject(context.Background(), 7, &models.DecideAbsenceRequest{AdminID: 99})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Reject(context.Background(), 7, &models.DecideAbsenceRequest{AdminID: 99, AdminNotes: ptr.Ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReject_Success(t *testing.T) {
	repo := &mockAbsenceRepo{absence: pendingAbsence()}
	notify := &mockNotifyClient{}
	svc := newTestService(repo, notify)

	resp, err := svc.Reject(context.Background(), 7, &models.DecideAbsenceRequest{
		AdminID:    99,
		AdminNotes: ptr.Ptr("too many absences this month"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	require.NotNil(t, repo.rejectedNotes)
	assert.Equal(t, "too many absences this month", *repo.rejectedNotes)
	assert.Equal(t, []notifyservice.NotificationKind{notifyservice.KindAbsenceRejected}, notify.kinds)
}

func TestDeclineMakeup_OwnerOnly(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusApproved
	absence.MakeupDeadline = ptr.Ptr(testNow.AddDate(0, 0, 5))
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.DeclineMakeup(context.Background(), 7, 1000)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.declined)
}

func TestDeclineMakeup_DeadlinePassed(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusApproved
	absence.MakeupDeadline = ptr.Ptr(testNow.Add(-time.Hour))
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.DeclineMakeup(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrDeadlineExpired)
}

func TestDeclineMakeup_Success(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusApproved
	absence.MakeupDeadline = ptr.Ptr(testNow.AddDate(0, 0, 5))
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	resp, err := svc.DeclineMakeup(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoMakeup), resp.Status)
	assert.True(t, repo.declined)
}

func TestComplete_OnlyMakeupSelected(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusApproved
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.Complete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_FutureMakeupDateIsAdvisory(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusMakeupSelected
	absence.MakeupSlotID = ptr.Ptr(int64(2))
	absence.MakeupDate = ptr.Ptr(testNow.AddDate(0, 0, 3))
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	// A makeup date in the future is logged but does not block completion
	resp, err := svc.Complete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.True(t, repo.completed)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockAbsenceRepo{getErr: absenceRepo.ErrAbsenceNotFound}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAbsenceNotFound)
}

func TestGetMemberAbsences_InvalidStatus(t *testing.T) {
	repo := &mockAbsenceRepo{}
	svc := newTestService(repo, &mockNotifyClient{})

	_, err := svc.GetMemberAbsences(context.Background(), &models.GetMemberAbsencesRequest{
		MemberID: 42,
		Status:   ptr.Ptr("nonsense"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMemberAbsences_Success(t *testing.T) {
	repo := &mockAbsenceRepo{list: []*domain.AbsenceRequest{pendingAbsence(), pendingAbsence()}}
	svc := newTestService(repo, &mockNotifyClient{})

	resp, err := svc.GetMemberAbsences(context.Background(), &models.GetMemberAbsencesRequest{MemberID: 42})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Absences, 2)
}

func TestDaysRemaining(t *testing.T) {
	absence := pendingAbsence()
	absence.Status = domain.StatusApproved
	absence.MakeupDeadline = ptr.Ptr(testNow.AddDate(0, 0, 7))
	repo := &mockAbsenceRepo{absence: absence}
	svc := newTestService(repo, &mockNotifyClient{})

	days, err := svc.DaysRemaining(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, days)
	assert.Equal(t, 7, *days)

	// Non-approved requests have no countdown
	absence.Status = domain.StatusCompleted
	days, err = svc.DaysRemaining(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, days)
}
