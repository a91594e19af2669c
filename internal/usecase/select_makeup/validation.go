package select_makeup

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AbsenceID <= 0 {
		return fmt.Errorf("%w: absenceID must be positive", ErrInvalidInput)
	}

	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.MakeupSlot <= 0 {
		return fmt.Errorf("%w: makeupSlot must be positive", ErrInvalidInput)
	}

	if req.MakeupDate.IsZero() {
		return fmt.Errorf("%w: makeupDate is required", ErrInvalidInput)
	}

	return nil
}
