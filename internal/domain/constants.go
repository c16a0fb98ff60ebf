package domain

import "time"

// Сетка слотов
const (
	// SlotResolutionMinutes шаг сетки слотов; запись или блокировка занимает каждую ячейку, которую пересекает
	SlotResolutionMinutes = 15
)

// Подписка бизнеса
const (
	// SubscriptionGracePeriod сколько бизнес с просроченной оплатой остается доступным после subscriptionValidUntil
	SubscriptionGracePeriod = 7 * 24 * time.Hour
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxBlockDurationMinutes   = 24 * 60
	MaxWalkinBufferMinutes    = 240
	MaxNoShowBlockLimit       = 100
	MaxServicesPerBooking     = 10
	MaxCustomerNameLength     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllWeekdays все дни недели, 0=воскресенье..6=суббота
var AllWeekdays = []time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}
