package select_makeup

import "errors"

var (
	// ErrAbsenceNotFound возвращается, когда заявка не найдена
	ErrAbsenceNotFound = errors.New("select_makeup: absence request not found")

	// ErrSlotNotFound возвращается, когда слот замены не найден
	ErrSlotNotFound = errors.New("select_makeup: makeup slot not found")

	// ErrInvalidTransition возвращается, когда заявка не в статусе approved
	ErrInvalidTransition = errors.New("select_makeup: absence is not approved")

	// ErrDeadlineExpired возвращается, когда срок выбора замены истёк
	ErrDeadlineExpired = errors.New("select_makeup: makeup deadline has expired")

	// ErrCrossMonthNotAllowed возвращается, когда дата замены не в месяце пропуска
	ErrCrossMonthNotAllowed = errors.New("select_makeup: makeup date must be in the month of the absence")

	// ErrSlotNotRunning возвращается, когда занятие слота замены не идёт в выбранную дату
	ErrSlotNotRunning = errors.New("select_makeup: makeup slot does not run on this date")

	// ErrMonthlyQuotaExceeded возвращается при превышении месячной квоты замен
	ErrMonthlyQuotaExceeded = errors.New("select_makeup: monthly makeup quota exceeded")

	// ErrSlotFull возвращается, когда в слоте замены нет свободных мест
	ErrSlotFull = errors.New("select_makeup: makeup slot is full")

	// ErrSameSlot возвращается при попытке выбрать заменой пропускаемый слот
	// на ту же дату
	ErrSameSlot = errors.New("select_makeup: makeup must differ from the missed occurrence")

	// ErrAccessDenied возвращается, когда участник работает с чужой заявкой
	ErrAccessDenied = errors.New("select_makeup: access denied")

	// ErrConflict возвращается, когда конкурентные транзакции исчерпали повторы
	ErrConflict = errors.New("select_makeup: concurrent conflict, please retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("select_makeup: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_makeup: internal error")
)
