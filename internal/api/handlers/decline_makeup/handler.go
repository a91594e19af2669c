package decline_makeup

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences"
)

const (
	msgInvalidAbsenceID  = "некорректный ID заявки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "заявка не найдена"
	msgInvalidTransition = "заявка не в статусе approved"
	msgDeadlineExpired   = "срок выбора замены истёк"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AbsencesService
	logger  Logger
}

func NewHandler(service AbsencesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/absences/{absenceId}/decline-makeup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /absences/{id}/decline-makeup - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	memberID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /absences/{id}/decline-makeup - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.DeclineMakeup(r.Context(), absenceID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrAbsenceNotFound):
			h.logger.Warn("PATCH /absences/{id}/decline-makeup - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("PATCH /absences/{id}/decline-makeup - Access denied: absence_id=%d, member_id=%d",
				absenceID, memberID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, absences.ErrInvalidTransition):
			h.logger.Warn("PATCH /absences/{id}/decline-makeup - Invalid transition: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, absences.ErrDeadlineExpired):
			h.logger.Warn("PATCH /absences/{id}/decline-makeup - Deadline expired: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgDeadlineExpired)

		default:
			h.logger.Error("PATCH /absences/{id}/decline-makeup - Failed to decline: absence_id=%d, member_id=%d, error=%v",
				absenceID, memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /absences/{id}/decline-makeup - Makeup declined: absence_id=%d, member_id=%d",
		absenceID, memberID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAbsence(result))
}
