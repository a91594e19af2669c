package approve_absence

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences"
)

const (
	msgInvalidAbsenceID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "заявка уже обработана"
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

// Handle PATCH /api/v1/absences/{absenceId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /absences/{id}/approve - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /absences/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: одобрение возможно без комментария
	var req ApproveAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /absences/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Approve(r.Context(), absenceID, req.ToServiceRequest(adminID))
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrAbsenceNotFound):
			h.logger.Warn("PATCH /absences/{id}/approve - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, absences.ErrInvalidTransition):
			h.logger.Warn("PATCH /absences/{id}/approve - Invalid transition: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /absences/{id}/approve - Failed to approve: absence_id=%d, admin_id=%d, error=%v",
				absenceID, adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /absences/{id}/approve - Absence approved: absence_id=%d, admin_id=%d", absenceID, adminID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAbsence(result))
}
