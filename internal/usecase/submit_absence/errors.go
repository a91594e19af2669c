package submit_absence

import "errors"

var (
	// ErrNotEnrolled возвращается, когда участник не назначен на слот
	ErrNotEnrolled = errors.New("submit_absence: member is not enrolled in this slot")

	// ErrDuplicateRequest возвращается, когда заявка на этот пропуск уже существует
	ErrDuplicateRequest = errors.New("submit_absence: absence request already exists")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("submit_absence: member not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("submit_absence: class slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_absence: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_absence: internal error")
)
