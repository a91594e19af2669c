package absences

import "errors"

var (
	// ErrAbsenceNotFound возвращается, когда заявка не найдена
	ErrAbsenceNotFound = errors.New("absence request not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (например, повторное одобрение уже одобренной заявки)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDeadlineExpired возвращается, когда срок выбора замены истёк
	ErrDeadlineExpired = errors.New("makeup deadline has expired")

	// ErrAccessDenied возвращается, когда участник работает с чужой заявкой
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("absences service: internal error")
)
