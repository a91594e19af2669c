package complete_absence

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
	msgInvalidTransition = "заявка не в статусе makeup_selected"
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

// Handle PATCH /api/v1/absences/{absenceId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /absences/{id}/complete - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /absences/{id}/complete - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Complete(r.Context(), absenceID)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrAbsenceNotFound):
			h.logger.Warn("PATCH /absences/{id}/complete - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, absences.ErrInvalidTransition):
			h.logger.Warn("PATCH /absences/{id}/complete - Invalid transition: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /absences/{id}/complete - Failed to complete: absence_id=%d, admin_id=%d, error=%v",
				absenceID, adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /absences/{id}/complete - Absence completed: absence_id=%d, admin_id=%d",
		absenceID, adminID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAbsence(result))
}
