package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

const (
	monday    types.Date = "2026-10-12"
	tuesday   types.Date = "2026-10-13"
	wednesday types.Date = "2026-10-14"
	saturday  types.Date = "2026-10-17"
	sunday    types.Date = "2026-10-18"
)

func newProvider() *domain.Provider {
	businessID := int64(1)
	return &domain.Provider{
		ID:                  10,
		BusinessID:          &businessID,
		Name:                "Tom",
		WorkStartTime:       "09:00",
		WorkEndTime:         "18:00",
		RecurringClosedDays: []time.Weekday{time.Sunday, time.Saturday},
		OnLocationMode:      domain.OnLocationNone,
	}
}

func optionalProvider() *domain.Provider {
	p := newProvider()
	p.OnLocationMode = domain.OnLocationOptional
	p.OnLocationDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	return p
}

func TestResolveDayMode_Recurrence(t *testing.T) {
	tests := []struct {
		name      string
		provider  func() *domain.Provider
		date      types.Date
		requested domain.BookingMode
		want      DayMode
	}{
		{
			name:      "none policy open weekday",
			provider:  newProvider,
			date:      tuesday,
			requested: domain.ModeOnLocation,
			want:      DayMode{IsWorking: true, EffectiveMode: domain.ModeInShop},
		},
		{
			name:     "none policy recurring closed day",
			provider: newProvider,
			date:     sunday,
			want:     DayMode{IsWorking: false, EffectiveMode: domain.ModeInShop, ClosureReason: ClosureNotWorking},
		},
		{
			name:      "optional policy in-shop on open day",
			provider:  optionalProvider,
			date:      tuesday,
			requested: domain.ModeInShop,
			want:      DayMode{IsWorking: true, EffectiveMode: domain.ModeInShop, ShowModeChoice: true},
		},
		{
			name:      "optional policy on-location on a day outside onLocationDays",
			provider:  optionalProvider,
			date:      tuesday,
			requested: domain.ModeOnLocation,
			want: DayMode{
				IsWorking:      false,
				EffectiveMode:  domain.ModeOnLocation,
				ShowModeChoice: true,
				ClosureReason:  ClosureNotWorking,
			},
		},
		{
			name:      "optional policy on-location on an on-location day",
			provider:  optionalProvider,
			date:      monday,
			requested: domain.ModeOnLocation,
			want:      DayMode{IsWorking: true, EffectiveMode: domain.ModeOnLocation, ShowModeChoice: true},
		},
		{
			name:      "optional policy empty requested mode means in-shop",
			provider:  optionalProvider,
			date:      saturday,
			requested: "",
			want: DayMode{
				IsWorking:      false,
				EffectiveMode:  domain.ModeInShop,
				ShowModeChoice: true,
				ClosureReason:  ClosureNotWorking,
			},
		},
		{
			name: "exclusive policy follows onLocationDays only",
			provider: func() *domain.Provider {
				p := optionalProvider()
				p.OnLocationMode = domain.OnLocationExclusive
				return p
			},
			date:      wednesday,
			requested: domain.ModeInShop,
			want:      DayMode{IsWorking: true, EffectiveMode: domain.ModeOnLocation},
		},
		{
			name: "exclusive policy closed on a regular in-shop day",
			provider: func() *domain.Provider {
				p := optionalProvider()
				p.OnLocationMode = domain.OnLocationExclusive
				return p
			},
			date: tuesday,
			want: DayMode{IsWorking: false, EffectiveMode: domain.ModeOnLocation, ClosureReason: ClosureNotWorking},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDayMode(tt.provider(), tt.date, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDayMode_ScheduleOverrideBeatsRecurrence(t *testing.T) {
	p := newProvider()
	p.ScheduleOverrides = map[types.Date]domain.ScheduleOverride{
		tuesday: {Closed: true},
		sunday:  {Closed: false},
	}

	got, err := ResolveDayMode(p, tuesday, domain.ModeInShop)
	require.NoError(t, err)
	assert.False(t, got.IsWorking)
	assert.Equal(t, ClosureNotWorking, got.ClosureReason)

	got, err = ResolveDayMode(p, sunday, domain.ModeInShop)
	require.NoError(t, err)
	assert.True(t, got.IsWorking)
}

func TestResolveDayMode_RedundantOverrideIsStillHonoured(t *testing.T) {
	p := newProvider()
	p.ScheduleOverrides = map[types.Date]domain.ScheduleOverride{tuesday: {Closed: false}}

	got, err := ResolveDayMode(p, tuesday, domain.ModeInShop)
	require.NoError(t, err)
	assert.True(t, got.IsWorking)
}

func TestResolveDayMode_ScheduleOverrideKeepsPolicyMode(t *testing.T) {
	p := optionalProvider()
	p.ScheduleOverrides = map[types.Date]domain.ScheduleOverride{tuesday: {Closed: false}}

	got, err := ResolveDayMode(p, tuesday, domain.ModeOnLocation)
	require.NoError(t, err)
	assert.Equal(t, DayMode{IsWorking: true, EffectiveMode: domain.ModeOnLocation, ShowModeChoice: true}, got)

	p.OnLocationMode = domain.OnLocationExclusive
	got, err = ResolveDayMode(p, tuesday, domain.ModeInShop)
	require.NoError(t, err)
	assert.Equal(t, DayMode{IsWorking: true, EffectiveMode: domain.ModeOnLocation}, got)
}

func TestResolveDayMode_DailyLocationOverride(t *testing.T) {
	t.Run("on-location-exclusive uses onLocationDays and hides choice", func(t *testing.T) {
		p := optionalProvider()
		p.DailyLocationOverrides = map[types.Date]domain.LocationOverride{
			monday:  domain.LocationOnLocationExclusive,
			tuesday: domain.LocationOnLocationExclusive,
		}

		got, err := ResolveDayMode(p, monday, domain.ModeInShop)
		require.NoError(t, err)
		assert.Equal(t, DayMode{IsWorking: true, EffectiveMode: domain.ModeOnLocation}, got)

		got, err = ResolveDayMode(p, tuesday, domain.ModeInShop)
		require.NoError(t, err)
		assert.Equal(t, DayMode{EffectiveMode: domain.ModeOnLocation, ClosureReason: ClosureNotWorking}, got)
	})

	t.Run("in-shop-exclusive uses recurring closed days", func(t *testing.T) {
		p := optionalProvider()
		p.DailyLocationOverrides = map[types.Date]domain.LocationOverride{
			tuesday:  domain.LocationInShopExclusive,
			saturday: domain.LocationInShopExclusive,
		}

		got, err := ResolveDayMode(p, tuesday, domain.ModeOnLocation)
		require.NoError(t, err)
		assert.Equal(t, DayMode{IsWorking: true, EffectiveMode: domain.ModeInShop}, got)

		got, err = ResolveDayMode(p, saturday, domain.ModeOnLocation)
		require.NoError(t, err)
		assert.False(t, got.IsWorking)
	})

	t.Run("overrides openness decided by a schedule override", func(t *testing.T) {
		p := optionalProvider()
		p.ScheduleOverrides = map[types.Date]domain.ScheduleOverride{tuesday: {Closed: false}}
		p.DailyLocationOverrides = map[types.Date]domain.LocationOverride{tuesday: domain.LocationOnLocationExclusive}

		got, err := ResolveDayMode(p, tuesday, domain.ModeInShop)
		require.NoError(t, err)
		assert.False(t, got.IsWorking)
		assert.False(t, got.ShowModeChoice)
	})

	t.Run("unknown value is ignored", func(t *testing.T) {
		p := optionalProvider()
		p.DailyLocationOverrides = map[types.Date]domain.LocationOverride{tuesday: "default"}

		got, err := ResolveDayMode(p, tuesday, domain.ModeInShop)
		require.NoError(t, err)
		assert.True(t, got.IsWorking)
		assert.True(t, got.ShowModeChoice)
	})
}

func TestResolveDayMode_VacationIsAbsolute(t *testing.T) {
	p := optionalProvider()
	p.ScheduleOverrides = map[types.Date]domain.ScheduleOverride{
		monday:    {Closed: false},
		wednesday: {Closed: false},
	}
	p.DailyLocationOverrides = map[types.Date]domain.LocationOverride{monday: domain.LocationOnLocationExclusive}
	p.TimeOff = []domain.TimeOff{{StartDate: monday, EndDate: wednesday}}

	for _, date := range []types.Date{monday, tuesday, wednesday} {
		for _, mode := range []domain.BookingMode{domain.ModeInShop, domain.ModeOnLocation} {
			got, err := ResolveDayMode(p, date, mode)
			require.NoError(t, err)
			assert.False(t, got.IsWorking, "date=%s mode=%s", date, mode)
			assert.Equal(t, ClosureOnHoliday, got.ClosureReason)
		}
	}

	got, err := ResolveDayMode(p, "2026-10-15", domain.ModeInShop)
	require.NoError(t, err)
	assert.True(t, got.IsWorking)
}

func TestResolveDayMode_Idempotent(t *testing.T) {
	p := optionalProvider()
	p.DailyLocationOverrides = map[types.Date]domain.LocationOverride{monday: domain.LocationInShopExclusive}

	first, err := ResolveDayMode(p, monday, domain.ModeOnLocation)
	require.NoError(t, err)
	second, err := ResolveDayMode(p, monday, domain.ModeOnLocation)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveDayMode_InvalidInput(t *testing.T) {
	_, err := ResolveDayMode(newProvider(), "13-10-2026", domain.ModeInShop)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ResolveDayMode(nil, tuesday, domain.ModeInShop)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
