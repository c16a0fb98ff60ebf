package schedule

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// recurringDefault открыт ли день недели без исключений при текущей политике выезда.
// decided=false для политики optional, если режимы расходятся: исключение тогда не избыточно.
func recurringDefault(p *domain.Provider, weekday time.Weekday) (open bool, decided bool) {
	inShopOpen := !p.IsRecurringClosed(weekday)
	onLocationOpen := p.IsOnLocationDay(weekday)

	switch p.EffectiveOnLocationMode() {
	case domain.OnLocationExclusive:
		return onLocationOpen, true
	case domain.OnLocationOptional:
		return inShopOpen, inShopOpen == onLocationOpen
	default:
		return inShopOpen, true
	}
}

// isRedundantOverride исключение совпадает с недельным расписанием
func isRedundantOverride(p *domain.Provider, date types.Date, o domain.ScheduleOverride) bool {
	weekday, err := date.Weekday()
	if err != nil {
		return false
	}
	open, decided := recurringDefault(p, weekday)
	return decided && open == !o.Closed
}

// canonicalizeOverrides удаляет исключения, ставшие избыточными после смены недельного расписания
func canonicalizeOverrides(p *domain.Provider) int {
	removed := 0
	for date, o := range p.ScheduleOverrides {
		if isRedundantOverride(p, date, o) {
			delete(p.ScheduleOverrides, date)
			removed++
		}
	}
	return removed
}
