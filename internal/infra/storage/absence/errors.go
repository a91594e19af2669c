package absence

import "errors"

var (
	// ErrAbsenceNotFound возвращается, когда заявка не найдена
	ErrAbsenceNotFound = errors.New("absence.repository: absence request not found")

	// ErrDuplicateAbsence возвращается при попытке создать вторую заявку
	// на тот же пропуск (member_id, slot_id, absent_date)
	ErrDuplicateAbsence = errors.New("absence.repository: absence request already exists")

	// ErrStatusConflict возвращается, когда условный переход статуса не
	// затронул ни одной строки: заявка не существует или её статус уже
	// изменён конкурентной операцией
	ErrStatusConflict = errors.New("absence.repository: status transition conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("absence.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("absence.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("absence.repository: failed to scan row")
)
