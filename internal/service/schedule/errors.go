package schedule

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("schedule: provider not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("schedule: business not found")

	// ErrBlockedSlotNotFound возвращается, когда блокировки с таким ID нет
	ErrBlockedSlotNotFound = errors.New("schedule: blocked slot not found")

	// ErrTimeOffNotFound возвращается, когда отпуска с такой датой начала нет
	ErrTimeOffNotFound = errors.New("schedule: time off not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
