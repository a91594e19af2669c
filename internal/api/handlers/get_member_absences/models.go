package get_member_absences

import (
	"strconv"

	"github.com/m04kA/SMC-ClubScheduleService/internal/service/absences/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(memberID int64, statusStr, slotIDStr string) (*models.GetMemberAbsencesRequest, error) {
	req := &models.GetMemberAbsencesRequest{
		MemberID: memberID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if slotIDStr != "" {
		slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SlotID = &slotID
	}

	return req, nil
}
