package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrProviderNotBookable возвращается, когда провайдер закрыт для записи (подписка, привязка, расписание)
	ErrProviderNotBookable = errors.New("create_booking: provider is not bookable")

	// ErrServiceNotFound возвращается, когда услуги нет у провайдера
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrDateInPast возвращается при попытке записаться на прошедшую дату
	ErrDateInPast = errors.New("create_booking: date is in the past")

	// ErrDayClosed возвращается, когда провайдер не работает в этот день в выбранном режиме
	ErrDayClosed = errors.New("create_booking: provider does not work on this date")

	// ErrCustomerBlocked возвращается, когда телефон клиента заблокирован за неявки
	ErrCustomerBlocked = errors.New("create_booking: customer is blocked")

	// ErrAlreadyBookedToday возвращается, когда у клиента уже есть активная запись на сегодня
	ErrAlreadyBookedToday = errors.New("create_booking: customer already has a booking today")

	// ErrSlotUnavailable возвращается, когда выбранный интервал не помещается в свободные слоты
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSlotConflict возвращается, когда интервал занят параллельной записью; клиент должен перезапросить расписание
	ErrSlotConflict = errors.New("create_booking: slot was taken concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
