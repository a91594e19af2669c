package get_absence

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences"
)

const (
	msgInvalidAbsenceID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
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

// Handle GET /api/v1/absences/{absenceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /absences/{id} - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	absence, err := h.service.GetByID(r.Context(), absenceID)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrAbsenceNotFound):
			h.logger.Warn("GET /absences/{id} - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /absences/{id} - Failed to get absence: absence_id=%d, error=%v", absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Для approved заявок добавляем остаток срока выбора замены,
	// считая его по уже загруженной заявке
	daysRemaining := absence.DaysUntilDeadline(time.Now())

	h.logger.Info("GET /absences/{id} - Absence retrieved successfully: absence_id=%d", absenceID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(absence, daysRemaining))
}
