package availability

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func activeBusiness() *domain.Business {
	return &domain.Business{ID: 1, Name: "Fade Factory", SubscriptionStatus: domain.SubscriptionActive}
}

func bookableProvider() *domain.Provider {
	p := newProvider()
	p.Services = []domain.Service{{ID: "cut", Name: "Haircut", Price: decimal.NewFromInt(25), DurationMinutes: 30}}
	return p
}

func TestEvaluateBookability_Subscription(t *testing.T) {
	validUntil := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status domain.SubscriptionStatus
		until  *time.Time
		now    time.Time
		want   Bookability
	}{
		{name: "active", status: domain.SubscriptionActive, now: validUntil, want: Bookability{Bookable: true}},
		{name: "trial", status: domain.SubscriptionTrial, now: validUntil, want: Bookability{Bookable: true}},
		{
			name:   "cancelled",
			status: domain.SubscriptionCancelled,
			until:  ptr.Ptr(validUntil.AddDate(1, 0, 0)),
			now:    validUntil,
			want:   Bookability{Reason: ReasonSubscriptionCancelled},
		},
		{
			name:   "past due within grace period",
			status: domain.SubscriptionPastDue,
			until:  &validUntil,
			now:    validUntil.Add(6 * 24 * time.Hour),
			want:   Bookability{Bookable: true},
		},
		{
			name:   "past due at grace period end",
			status: domain.SubscriptionPastDue,
			until:  &validUntil,
			now:    validUntil.Add(7 * 24 * time.Hour),
			want:   Bookability{Bookable: true},
		},
		{
			name:   "past due after grace period",
			status: domain.SubscriptionPastDue,
			until:  &validUntil,
			now:    validUntil.Add(8 * 24 * time.Hour),
			want:   Bookability{Reason: ReasonSubscriptionExpired},
		},
		{
			name:   "past due without valid until",
			status: domain.SubscriptionPastDue,
			now:    validUntil,
			want:   Bookability{Reason: ReasonSubscriptionExpired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := activeBusiness()
			b.SubscriptionStatus = tt.status
			b.SubscriptionValidUntil = tt.until

			got := EvaluateBookability(bookableProvider(), b, tt.now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Bookable, IsProviderBookable(bookableProvider(), b, tt.now))
		})
	}
}

func TestEvaluateBookability_Unlinked(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	p := bookableProvider()
	p.BusinessID = nil
	assert.Equal(t, ReasonProviderUnlinked, EvaluateBookability(p, activeBusiness(), now).Reason)

	assert.Equal(t, ReasonProviderUnlinked, EvaluateBookability(bookableProvider(), nil, now).Reason)

	other := activeBusiness()
	other.ID = 2
	assert.Equal(t, ReasonProviderUnlinked, EvaluateBookability(bookableProvider(), other, now).Reason)
}

func TestEvaluateBookability_ClosedBySchedule(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	closed := newProvider()
	closed.RecurringClosedDays = domain.AllWeekdays

	assert.True(t, IsClosedBySchedule(closed))
	assert.Equal(t, Bookability{Reason: ReasonClosedBySchedule}, EvaluateBookability(closed, activeBusiness(), now))

	t.Run("a single override reopens", func(t *testing.T) {
		p := newProvider()
		p.RecurringClosedDays = domain.AllWeekdays
		p.ScheduleOverrides = map[types.Date]domain.ScheduleOverride{tuesday: {Closed: false}}
		assert.False(t, IsClosedBySchedule(p))
	})

	t.Run("services keep the provider listed", func(t *testing.T) {
		p := bookableProvider()
		p.RecurringClosedDays = domain.AllWeekdays
		assert.False(t, IsClosedBySchedule(p))
	})

	t.Run("exclusive on-location keeps the provider listed", func(t *testing.T) {
		p := newProvider()
		p.RecurringClosedDays = domain.AllWeekdays
		p.OnLocationMode = domain.OnLocationExclusive
		assert.False(t, IsClosedBySchedule(p))
	})

	t.Run("open weekdays", func(t *testing.T) {
		assert.False(t, IsClosedBySchedule(newProvider()))
	})
}

func TestSortForSelection(t *testing.T) {
	mk := func(id int64, bookable bool) ProviderListing {
		return ProviderListing{
			Provider:    &domain.Provider{ID: id},
			Bookability: Bookability{Bookable: bookable},
		}
	}
	listings := []ProviderListing{mk(1, false), mk(2, true), mk(3, false), mk(4, true), mk(5, true)}

	SortForSelection(listings)

	ids := make([]int64, len(listings))
	for i, l := range listings {
		ids[i] = l.Provider.ID
	}
	assert.Equal(t, []int64{2, 4, 5, 1, 3}, ids)
}
