package get_day_schedule

import (
	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса расписания провайдера на день
type Request struct {
	ProviderID int64
	Date       types.Date
	Mode       domain.BookingMode // выбор клиента, учитывается только при политике optional
}

// Response расписание провайдера на день
type Response struct {
	ProviderID     int64
	Date           types.Date
	IsWorking      bool
	ClosureReason  availability.ClosureReason
	EffectiveMode  domain.BookingMode
	ShowModeChoice bool
	Slots          []Slot // пусто, если провайдер не работает
}

// Slot ячейка сетки
type Slot struct {
	StartTime    types.TimeString
	EndTime      types.TimeString
	State        domain.SlotState
	IsSelectable bool
}
