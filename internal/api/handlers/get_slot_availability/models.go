package get_slot_availability

import (
	"github.com/m04kA/SMC-ClubScheduleService/internal/domain"
	"github.com/m04kA/SMC-ClubScheduleService/internal/service/schedule"
)

// SlotAvailabilityResponse HTTP response model
// remainingSeats присутствует только для идущих занятий с лимитом мест
type SlotAvailabilityResponse struct {
	SlotID         int64   `json:"slotId"`
	Date           string  `json:"date"`
	Runs           bool    `json:"runs"`
	Reason         *string `json:"reason,omitempty"`
	RemainingSeats *int    `json:"remainingSeats,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(av *schedule.Availability, remaining *int) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		SlotID:         av.SlotID,
		Date:           av.Date.Format(domain.DateFormat),
		Runs:           av.Runs,
		Reason:         av.Reason,
		RemainingSeats: remaining,
	}
}
