package domain

import "time"

// SubscriptionStatus состояние подписки бизнеса
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Business салон, которому принадлежат провайдеры
type Business struct {
	ID                     int64
	Name                   string
	SubscriptionStatus     SubscriptionStatus
	SubscriptionValidUntil *time.Time

	// NoShowBlockLimit после скольких неявок телефон блокируется, 0 = не отслеживать
	NoShowBlockLimit int
	// EnableWalkinBuffer глобальный переключатель буфера для клиентов без записи
	EnableWalkinBuffer bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GracePeriodEnd момент, после которого просроченная подписка считается истекшей.
// Возвращает false, если дата окончания подписки не задана.
func (b *Business) GracePeriodEnd() (time.Time, bool) {
	if b.SubscriptionValidUntil == nil {
		return time.Time{}, false
	}
	return b.SubscriptionValidUntil.Add(SubscriptionGracePeriod), true
}

// TracksNoShows возвращает true, если для бизнеса настроена блокировка по неявкам
func (b *Business) TracksNoShows() bool {
	return b.NoShowBlockLimit > 0
}
