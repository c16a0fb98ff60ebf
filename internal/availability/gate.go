package availability

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// BookabilityReason why a provider is not offered for booking
type BookabilityReason string

const (
	BookableOK                  BookabilityReason = ""
	ReasonProviderUnlinked      BookabilityReason = "provider_unlinked"
	ReasonClosedBySchedule      BookabilityReason = "closed_by_schedule"
	ReasonSubscriptionCancelled BookabilityReason = "subscription_cancelled"
	ReasonSubscriptionExpired   BookabilityReason = "subscription_expired"
)

// Bookability provider-level gate outcome
type Bookability struct {
	Bookable bool
	Reason   BookabilityReason
}

// IsClosedBySchedule reports that a provider has structurally nothing to sell: every weekday
// closed, no date exceptions, no services and no on-location alternative.
func IsClosedBySchedule(p *domain.Provider) bool {
	return p.IsClosedEveryDay() &&
		len(p.ScheduleOverrides) == 0 &&
		len(p.Services) == 0 &&
		p.EffectiveOnLocationMode() != domain.OnLocationExclusive
}

// EvaluateBookability combines the provider's configuration with the owning business's
// subscription health. A missing business fails closed.
func EvaluateBookability(p *domain.Provider, b *domain.Business, now time.Time) Bookability {
	if p == nil || b == nil || p.BusinessID == nil || *p.BusinessID != b.ID {
		return Bookability{Reason: ReasonProviderUnlinked}
	}

	if IsClosedBySchedule(p) {
		return Bookability{Reason: ReasonClosedBySchedule}
	}

	switch b.SubscriptionStatus {
	case domain.SubscriptionCancelled:
		return Bookability{Reason: ReasonSubscriptionCancelled}
	case domain.SubscriptionPastDue:
		graceEnd, ok := b.GracePeriodEnd()
		// Без даты окончания подписки льготный период не вычислить
		if !ok || now.After(graceEnd) {
			return Bookability{Reason: ReasonSubscriptionExpired}
		}
	}

	return Bookability{Bookable: true}
}

// IsProviderBookable boolean view of EvaluateBookability
func IsProviderBookable(p *domain.Provider, b *domain.Business, now time.Time) bool {
	return EvaluateBookability(p, b, now).Bookable
}

// ProviderListing provider with its gate outcome, for the selection list
type ProviderListing struct {
	Provider    *domain.Provider
	Bookability Bookability
}

// SortForSelection orders listings bookable first, keeping the input order within each group
func SortForSelection(listings []ProviderListing) {
	slices.SortStableFunc(listings, func(a, b ProviderListing) int {
		switch {
		case a.Bookability.Bookable == b.Bookability.Bookable:
			return 0
		case a.Bookability.Bookable:
			return -1
		default:
			return 1
		}
	})
}
