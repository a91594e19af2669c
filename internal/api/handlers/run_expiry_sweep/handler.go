package run_expiry_sweep

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClubScheduleService/internal/api/handlers"
	expireAbsences "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/expire_absences"
)

const (
	msgSweepInProgress = "проход по просроченным заявкам уже выполняется"
)

type Handler struct {
	useCase ExpireAbsencesUseCase
	logger  Logger
}

func NewHandler(useCase ExpireAbsencesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/absences/expiry-sweep
// Ручной запуск прохода; по расписанию его запускает cron в main
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, expireAbsences.ErrSweepInProgress):
			h.logger.Warn("POST /absences/expiry-sweep - Sweep already in progress")
			handlers.RespondError(w, http.StatusConflict, msgSweepInProgress)

		default:
			h.logger.Error("POST /absences/expiry-sweep - Sweep failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absences/expiry-sweep - Sweep finished: expired=%d, failed=%d",
		len(result.ExpiredIDs), result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
