package availability

import "errors"

// ErrInvalidInput возвращается, когда вызывающий нарушил контракт: некорректная дата,
// время или отсутствует обязательный снимок. Бизнес-исходы (закрытый день, нет слотов,
// отказ в записи) ошибками не являются и возвращаются значениями.
var ErrInvalidInput = errors.New("availability: invalid input")
