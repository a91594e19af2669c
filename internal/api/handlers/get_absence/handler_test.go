package get_absence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
	"github.com/m04kA/SMC-ClubScheduleService/pkg/ptr"
)

type mockAbsencesService struct {
	absence *models.AbsenceResponse
	getErr  error

	getCalls int
}

func (m *mockAbsencesService) GetByID(ctx context.Context, id int64) (*models.AbsenceResponse, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.absence, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func serve(t *testing.T, svc *mockAbsencesService, path string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/absences/{absenceId}", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_ApprovedAbsenceIncludesDaysUntilDeadline(t *testing.T) {
	svc := &mockAbsencesService{absence: &models.AbsenceResponse{
		ID:             7,
		MemberID:       42,
		SlotID:         1,
		AbsentDate:     time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		Status:         string(domain.StatusApproved),
		MakeupDeadline: ptr.Ptr(time.Now().AddDate(0, 0, 7)),
	}}

	rec := serve(t, svc, "/api/v1/absences/7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID                int64  `json:"id"`
		Status            string `json:"status"`
		DaysUntilDeadline *int   `json:"daysUntilDeadline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, string(domain.StatusApproved), body.Status)
	require.NotNil(t, body.DaysUntilDeadline)
	assert.Equal(t, 7, *body.DaysUntilDeadline)

	// The countdown comes from the loaded row, not a second fetch
	assert.Equal(t, 1, svc.getCalls)
}

func TestHandle_PendingAbsenceHasNoCountdown(t *testing.T) {
	svc := &mockAbsencesService{absence: &models.AbsenceResponse{
		ID:         7,
		MemberID:   42,
		SlotID:     1,
		AbsentDate: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		Status:     string(domain.StatusPending),
	}}

	rec := serve(t, svc, "/api/v1/absences/7")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "daysUntilDeadline")
	assert.Equal(t, 1, svc.getCalls)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &mockAbsencesService{getErr: absences.ErrAbsenceNotFound}

	rec := serve(t, svc, "/api/v1/absences/7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InvalidID(t *testing.T) {
	rec := serve(t, &mockAbsencesService{}, "/api/v1/absences/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
