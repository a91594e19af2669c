package submit_absence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/absence"
	slotRepo "github.com/m04kA/SMC-ClubScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ClubScheduleService/internal/integrations/memberservice"
)

type mockAbsenceRepo struct {
	created   *domain.AbsenceRequest
	createErr error
	exists    bool
}

func (m *mockAbsenceRepo) Create(ctx context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *req
	created.ID = 7
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.created = &created
	return &created, nil
}

func (m *mockAbsenceRepo) HasActiveForOccurrence(ctx context.Context, memberID, slotID int64, absentDate time.Time) (bool, error) {
	return m.exists, nil
}

type mockSlotRepo struct {
	getErr   error
	enrolled bool
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.ClassSlot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &domain.ClassSlot{ID: id, DayOfWeek: time.Tuesday, IsActive: true}, nil
}

func (m *mockSlotRepo) HasActiveAssignment(ctx context.Context, memberID, slotID int64) (bool, error) {
	return m.enrolled, nil
}

type mockMemberClient struct {
	member *memberservice.Member
	err    error
}

func (m *mockMemberClient) GetMemberWithGracefulDegradation(ctx context.Context, memberID int64) (*memberservice.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.member, nil
}

// passthroughTxManager runs the transaction body without a real transaction
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validRequest() *Request {
	return &Request{
		MemberID:   42,
		SlotID:     1,
		AbsentDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func activeMember() *memberservice.Member {
	return &memberservice.Member{ID: 42, FullName: "Test Member", Status: "active"}
}

func newTestUseCase(absences *mockAbsenceRepo, slots *mockSlotRepo, members *mockMemberClient) *UseCase {
	return NewUseCase(absences, slots, members, passthroughTxManager{}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	absences := &mockAbsenceRepo{}
	uc := newTestUseCase(absences, &mockSlotRepo{enrolled: true}, &mockMemberClient{member: activeMember()})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.NotNil(t, absences.created)
	assert.Equal(t, int64(42), absences.created.MemberID)
}

func TestExecute_MemberNotFound(t *testing.T) {
	uc := newTestUseCase(&mockAbsenceRepo{}, &mockSlotRepo{enrolled: true},
		&mockMemberClient{err: memberservice.ErrMemberNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_InactiveMember(t *testing.T) {
	member := activeMember()
	member.Status = "suspended"
	uc := newTestUseCase(&mockAbsenceRepo{}, &mockSlotRepo{enrolled: true}, &mockMemberClient{member: member})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestExecute_MemberServiceDegraded(t *testing.T) {
	// Unavailable member service falls back to the local assignment check
	uc := newTestUseCase(&mockAbsenceRepo{}, &mockSlotRepo{enrolled: true},
		&mockMemberClient{err: memberservice.ErrServiceDegraded})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(&mockAbsenceRepo{}, &mockSlotRepo{getErr: slotRepo.ErrSlotNotFound},
		&mockMemberClient{member: activeMember()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_NotEnrolled(t *testing.T) {
	uc := newTestUseCase(&mockAbsenceRepo{}, &mockSlotRepo{enrolled: false},
		&mockMemberClient{member: activeMember()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestExecute_DuplicateRequest(t *testing.T) {
	uc := newTestUseCase(&mockAbsenceRepo{exists: true}, &mockSlotRepo{enrolled: true},
		&mockMemberClient{member: activeMember()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestExecute_DuplicateRaceOnInsert(t *testing.T) {
	// Unique constraint violation on insert maps to the same duplicate error
	uc := newTestUseCase(&mockAbsenceRepo{createErr: absenceRepo.ErrDuplicateAbsence},
		&mockSlotRepo{enrolled: true}, &mockMemberClient{member: activeMember()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockAbsenceRepo{}, &mockSlotRepo{enrolled: true},
		&mockMemberClient{member: activeMember()})

	tests := []struct {
		name string
		mod  func(r *Request)
	}{
		{"zero member", func(r *Request) { r.MemberID = 0 }},
		{"zero slot", func(r *Request) { r.SlotID = 0 }},
		{"zero date", func(r *Request) { r.AbsentDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mod(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_InternalRepoError(t *testing.T) {
	uc := newTestUseCase(&mockAbsenceRepo{createErr: errors.New("db down")},
		&mockSlotRepo{enrolled: true}, &mockMemberClient{member: activeMember()})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
