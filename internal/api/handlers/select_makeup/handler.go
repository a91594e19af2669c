package select_makeup

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/api/middleware"
	selectMakeup "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/select_makeup"
)

const (
	msgInvalidAbsenceID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты замены, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAbsenceNotFound    = "заявка не найдена"
	msgSlotNotFound       = "слот замены не найден"
	msgInvalidTransition  = "заявка не в статусе approved"
	msgDeadlineExpired    = "срок выбора замены истёк"
	msgCrossMonth         = "дата замены должна быть в месяце пропущенного занятия"
	msgSlotNotRunning     = "занятие замены не проводится в выбранную дату"
	msgQuotaExceeded      = "превышена месячная квота замен"
	msgSlotFull           = "в слоте замены нет свободных мест"
	msgSameSlot           = "замена должна отличаться от пропущенного занятия"
	msgForbidden          = "доступ запрещен"
	msgConflict           = "конфликт конкурентных запросов, повторите попытку"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase SelectMakeupUseCase
	logger  Logger
}

func NewHandler(useCase SelectMakeupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/absences/{absenceId}/makeup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /absences/{id}/makeup - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	memberID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /absences/{id}/makeup - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SelectMakeupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /absences/{id}/makeup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(absenceID, memberID)
	if err != nil {
		h.logger.Warn("POST /absences/{id}/makeup - Failed to parse makeup date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, selectMakeup.ErrAbsenceNotFound):
			h.logger.Warn("POST /absences/{id}/makeup - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgAbsenceNotFound)

		case errors.Is(err, selectMakeup.ErrSlotNotFound):
			h.logger.Warn("POST /absences/{id}/makeup - Slot not found: slot_id=%d", req.MakeupSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, selectMakeup.ErrAccessDenied):
			h.logger.Warn("POST /absences/{id}/makeup - Access denied: absence_id=%d, member_id=%d",
				absenceID, memberID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selectMakeup.ErrInvalidTransition):
			h.logger.Warn("POST /absences/{id}/makeup - Invalid transition: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, selectMakeup.ErrDeadlineExpired):
			h.logger.Warn("POST /absences/{id}/makeup - Deadline expired: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgDeadlineExpired)

		case errors.Is(err, selectMakeup.ErrCrossMonthNotAllowed):
			h.logger.Warn("POST /absences/{id}/makeup - Cross month makeup: absence_id=%d, date=%s",
				absenceID, req.MakeupDate)
			handlers.RespondBadRequest(w, msgCrossMonth)

		case errors.Is(err, selectMakeup.ErrSameSlot):
			h.logger.Warn("POST /absences/{id}/makeup - Same occurrence selected: absence_id=%d", absenceID)
			handlers.RespondBadRequest(w, msgSameSlot)

		case errors.Is(err, selectMakeup.ErrSlotNotRunning):
			h.logger.Warn("POST /absences/{id}/makeup - Slot not running: slot_id=%d, date=%s",
				req.MakeupSlotID, req.MakeupDate)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotRunning)

		case errors.Is(err, selectMakeup.ErrMonthlyQuotaExceeded):
			h.logger.Warn("POST /absences/{id}/makeup - Quota exceeded: member_id=%d", memberID)
			handlers.RespondError(w, http.StatusConflict, msgQuotaExceeded)

		case errors.Is(err, selectMakeup.ErrSlotFull):
			h.logger.Warn("POST /absences/{id}/makeup - Slot full: slot_id=%d", req.MakeupSlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, selectMakeup.ErrConflict):
			h.logger.Warn("POST /absences/{id}/makeup - Concurrent conflict: absence_id=%d", absenceID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, selectMakeup.ErrInvalidInput):
			h.logger.Warn("POST /absences/{id}/makeup - Invalid input: absence_id=%d, error=%v", absenceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /absences/{id}/makeup - Failed to select makeup: absence_id=%d, member_id=%d, error=%v",
				absenceID, memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absences/{id}/makeup - Makeup selected: absence_id=%d, slot_id=%d, date=%s",
		absenceID, req.MakeupSlotID, req.MakeupDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
