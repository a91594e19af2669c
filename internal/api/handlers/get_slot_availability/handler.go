package get_slot_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/schedule"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate   = "отсутствует обязательный параметр date"
	msgSlotNotFound  = "слот занятия не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{slotId}/availability - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/{slotId}/availability - Missing date parameter: slot_id=%d", slotID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/{slotId}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	availability, err := h.service.Occurs(r.Context(), slotID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{slotId}/availability - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("GET /slots/{slotId}/availability - Failed to check availability: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Остаток мест имеет смысл только для идущего занятия
	var remaining *int
	if availability.Runs {
		remaining, err = h.service.Remaining(r.Context(), slotID)
		if err != nil {
			h.logger.Error("GET /slots/{slotId}/availability - Failed to count seats: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
			return
		}
	}

	h.logger.Info("GET /slots/{slotId}/availability - Availability checked: slot_id=%d, date=%s, runs=%t",
		slotID, dateStr, availability.Runs)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(availability, remaining))
}
