package get_day_schedule

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("get_day_schedule: provider not found")

	// ErrProviderNotBookable возвращается, когда провайдер недоступен для записи
	ErrProviderNotBookable = errors.New("get_day_schedule: provider is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_schedule: internal error")
)
