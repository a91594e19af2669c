package submit_absence

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ClubScheduleService/internal/api/middleware"
	submitAbsence "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/submit_absence"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты пропуска, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMemberNotFound     = "участник не найден"
	msgSlotNotFound       = "слот занятия не найден"
	msgNotEnrolled        = "участник не записан на это занятие"
	msgDuplicateRequest   = "заявка на этот пропуск уже существует"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase SubmitAbsenceUseCase
	logger  Logger
}

func NewHandler(useCase SubmitAbsenceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	memberID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /absences - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(memberID)
	if err != nil {
		h.logger.Warn("POST /absences - Failed to parse absent date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitAbsence.ErrMemberNotFound):
			h.logger.Warn("POST /absences - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, submitAbsence.ErrSlotNotFound):
			h.logger.Warn("POST /absences - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, submitAbsence.ErrNotEnrolled):
			h.logger.Warn("POST /absences - Member not enrolled: member_id=%d, slot_id=%d", memberID, req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgNotEnrolled)

		case errors.Is(err, submitAbsence.ErrDuplicateRequest):
			h.logger.Warn("POST /absences - Duplicate request: member_id=%d, slot_id=%d, date=%s",
				memberID, req.SlotID, req.AbsentDate)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRequest)

		case errors.Is(err, submitAbsence.ErrInvalidInput):
			h.logger.Warn("POST /absences - Invalid input: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /absences - Failed to submit absence: member_id=%d, slot_id=%d, error=%v",
				memberID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absences - Absence submitted successfully: absence_id=%d, member_id=%d, slot_id=%d",
		result.ID, memberID, req.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
