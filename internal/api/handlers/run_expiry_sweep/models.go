package run_expiry_sweep

import expireAbsences "github.com/m04kA/SMC-ClubScheduleService/internal/usecase/expire_absences"

// SweepResultResponse HTTP response model
type SweepResultResponse struct {
	ExpiredIDs []int64 `json:"expiredIds"`
	Expired    int     `json:"expired"`
	Failed     int     `json:"failed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *expireAbsences.Response) *SweepResultResponse {
	return &SweepResultResponse{
		ExpiredIDs: resp.ExpiredIDs,
		Expired:    len(resp.ExpiredIDs),
		Failed:     resp.Failed,
	}
}
