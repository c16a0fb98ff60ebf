package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// OnLocationMode политика провайдера для выездных записей
type OnLocationMode string

const (
	// OnLocationNone только запись в салон
	OnLocationNone OnLocationMode = "none"
	// OnLocationOptional клиент сам выбирает режим визита
	OnLocationOptional OnLocationMode = "optional"
	// OnLocationExclusive провайдер работает только на выезде
	OnLocationExclusive OnLocationMode = "exclusive"
)

// IsValid проверяет, что значение из допустимого набора
func (m OnLocationMode) IsValid() bool {
	switch m {
	case OnLocationNone, OnLocationOptional, OnLocationExclusive:
		return true
	}
	return false
}

// BookingMode режим визита
type BookingMode string

const (
	ModeInShop     BookingMode = "in-shop"
	ModeOnLocation BookingMode = "on-location"
)

// IsValid проверяет, что значение из допустимого набора
func (m BookingMode) IsValid() bool {
	return m == ModeInShop || m == ModeOnLocation
}

// LocationOverride режим, зафиксированный на конкретную дату.
// Отсутствие записи на дату означает "без переопределения".
type LocationOverride string

const (
	LocationInShopExclusive     LocationOverride = "in-shop-exclusive"
	LocationOnLocationExclusive LocationOverride = "on-location-exclusive"
)

// IsValid проверяет, что значение из допустимого набора
func (o LocationOverride) IsValid() bool {
	return o == LocationInShopExclusive || o == LocationOnLocationExclusive
}

// ScheduleOverride исключение из недельного расписания на конкретную дату
type ScheduleOverride struct {
	Closed bool `json:"closed"`
}

// TimeOff отпуск: закрытые календарные дни, обе границы включительно
type TimeOff struct {
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
}

// Covers возвращает true, если дата попадает в диапазон отпуска
func (t TimeOff) Covers(date types.Date) bool {
	return date.Between(t.StartDate, t.EndDate)
}

// BlockedSlot ручная блокировка времени на конкретную дату
type BlockedSlot struct {
	ID              string           `json:"id"`
	Date            types.Date       `json:"date"`
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"duration"`
}

// Service услуга провайдера
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration"`
}

// Provider мастер (барбер) со своим расписанием.
// Ядро расчета доступности только читает снимок провайдера и никогда его не меняет.
type Provider struct {
	ID         int64
	BusinessID *int64 // NULL = провайдер не привязан к бизнесу
	Name       string

	WorkStartTime types.TimeString
	WorkEndTime   types.TimeString

	RecurringClosedDays    []time.Weekday
	ScheduleOverrides      map[types.Date]ScheduleOverride
	DailyLocationOverrides map[types.Date]LocationOverride

	OnLocationMode OnLocationMode
	OnLocationDays []time.Weekday

	TimeOff      []TimeOff
	BlockedSlots []BlockedSlot
	Services     []Service

	EnableWalkinBuffer  bool
	WalkinBufferMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRecurringClosed возвращает true, если день недели закрыт для записи в салон по умолчанию
func (p *Provider) IsRecurringClosed(weekday time.Weekday) bool {
	return slices.Contains(p.RecurringClosedDays, weekday)
}

// IsOnLocationDay возвращает true, если в этот день недели возможны выездные записи
func (p *Provider) IsOnLocationDay(weekday time.Weekday) bool {
	return slices.Contains(p.OnLocationDays, weekday)
}

// ScheduleOverrideFor возвращает исключение расписания на дату, если оно задано
func (p *Provider) ScheduleOverrideFor(date types.Date) (ScheduleOverride, bool) {
	override, ok := p.ScheduleOverrides[date]
	return override, ok
}

// LocationOverrideFor возвращает переопределение режима на дату, если оно задано
func (p *Provider) LocationOverrideFor(date types.Date) (LocationOverride, bool) {
	override, ok := p.DailyLocationOverrides[date]
	return override, ok
}

// IsOnVacation возвращает true, если дата попадает в любой диапазон отпуска
func (p *Provider) IsOnVacation(date types.Date) bool {
	for _, off := range p.TimeOff {
		if off.Covers(date) {
			return true
		}
	}
	return false
}

// IsClosedEveryDay возвращает true, если все 7 дней недели закрыты по умолчанию
func (p *Provider) IsClosedEveryDay() bool {
	for _, weekday := range AllWeekdays {
		if !p.IsRecurringClosed(weekday) {
			return false
		}
	}
	return true
}

// FindService ищет услугу по ID
func (p *Provider) FindService(id string) (Service, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// BlockedSlotsOn возвращает ручные блокировки на указанную дату
func (p *Provider) BlockedSlotsOn(date types.Date) []BlockedSlot {
	result := make([]BlockedSlot, 0)
	for _, b := range p.BlockedSlots {
		if b.Date == date {
			result = append(result, b)
		}
	}
	return result
}

// EffectiveOnLocationMode возвращает политику, пустое значение трактуется как none
func (p *Provider) EffectiveOnLocationMode() OnLocationMode {
	if p.OnLocationMode == "" {
		return OnLocationNone
	}
	return p.OnLocationMode
}
