package get_member_absences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences"
)

const (
	msgInvalidMemberID = "некорректный ID участника"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/members/{memberId}/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{memberId}/absences - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(memberID, query.Get("status"), query.Get("slotId"))
	if err != nil {
		h.logger.Warn("GET /members/{memberId}/absences - Invalid filter: member_id=%d, error=%v", memberID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetMemberAbsences(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrInvalidInput):
			h.logger.Warn("GET /members/{memberId}/absences - Invalid filter: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /members/{memberId}/absences - Failed to get absences: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{memberId}/absences - Absences retrieved successfully: member_id=%d, count=%d",
		memberID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAbsenceList(result))
}
