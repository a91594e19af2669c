package expire_absences

import "errors"

var (
	// ErrSweepInProgress возвращается, когда предыдущий проход ещё не завершён
	ErrSweepInProgress = errors.New("expire_absences: sweep already in progress")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("expire_absences: internal error")
)
