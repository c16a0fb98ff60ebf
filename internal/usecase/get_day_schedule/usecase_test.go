package get_day_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/business"
	providerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type MockProviderRepo struct{ mock.Mock }

func (m *MockProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

type MockBusinessRepo struct{ mock.Mock }

func (m *MockBusinessRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type MockAppointmentRepo struct{ mock.Mock }

func (m *MockAppointmentRepo) GetWithFilter(ctx context.Context, f domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type gridSpy struct{ results []string }

func (s *gridSpy) RecordSlotGrid(result string) { s.results = append(s.results, result) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

const (
	thursday types.Date = "2026-10-15"
	sunday   types.Date = "2026-10-18"
)

// 10:20 в четверг: ячейки до 10:15 включительно уже в прошлом
var now = time.Date(2026, 10, 15, 10, 20, 0, 0, time.UTC)

func testProvider() *domain.Provider {
	businessID := int64(1)
	return &domain.Provider{
		ID:                  10,
		BusinessID:          &businessID,
		WorkStartTime:       "09:00",
		WorkEndTime:         "12:00",
		RecurringClosedDays: []time.Weekday{time.Sunday},
		OnLocationMode:      domain.OnLocationOptional,
		OnLocationDays:      []time.Weekday{time.Sunday},
		Services:            []domain.Service{{ID: "cut", DurationMinutes: 30}},
		EnableWalkinBuffer:  true,
		WalkinBufferMinutes: 30,
		BlockedSlots: []domain.BlockedSlot{
			{ID: "b1", Date: thursday, StartTime: "11:30", DurationMinutes: 30},
		},
	}
}

type fixture struct {
	providers    *MockProviderRepo
	businesses   *MockBusinessRepo
	appointments *MockAppointmentRepo
	grids        *gridSpy
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		providers:    new(MockProviderRepo),
		businesses:   new(MockBusinessRepo),
		appointments: new(MockAppointmentRepo),
		grids:        &gridSpy{},
	}
	f.uc = NewUseCase(f.providers, f.businesses, f.appointments, f.grids, fixedTime{now: now}, logger.Nop())
	return f
}

func statesByStart(slots []Slot) map[types.TimeString]domain.SlotState {
	m := make(map[types.TimeString]domain.SlotState, len(slots))
	for _, s := range slots {
		m[s.StartTime] = s.State
	}
	return m
}

func TestExecute_WorkingDay(t *testing.T) {
	f := newFixture()

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Business{ID: 1, SubscriptionStatus: domain.SubscriptionActive, EnableWalkinBuffer: true}, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(func(flt domain.AppointmentsFilter) bool {
		return *flt.ProviderID == 10 && flt.IsSingleDay() && *flt.StartDate == thursday
	})).Return([]*domain.Appointment{
		{ID: 1, Date: thursday, SlotTime: "11:00", TotalDuration: 20, Status: domain.StatusBooked},
		{ID: 2, Date: thursday, SlotTime: "10:30", TotalDuration: 30, Status: domain.StatusCancelled},
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday})
	require.NoError(t, err)

	assert.True(t, resp.IsWorking)
	assert.Equal(t, domain.ModeInShop, resp.EffectiveMode)
	assert.True(t, resp.ShowModeChoice)
	require.Len(t, resp.Slots, 12)

	states := statesByStart(resp.Slots)
	assert.Equal(t, domain.SlotPast, states["09:00"])
	assert.Equal(t, domain.SlotPast, states["10:15"])
	assert.Equal(t, domain.SlotWalkin, states["10:30"])
	assert.Equal(t, domain.SlotWalkin, states["10:45"])
	assert.Equal(t, domain.SlotBooked, states["11:00"])
	assert.Equal(t, domain.SlotBooked, states["11:15"])
	assert.Equal(t, domain.SlotBooked, states["11:30"])
	assert.Equal(t, domain.SlotBooked, states["11:45"])

	assert.Equal(t, []string{gridComputed}, f.grids.results)
}

func TestExecute_WalkinBufferNeedsBusinessSwitch(t *testing.T) {
	f := newFixture()

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Business{ID: 1, SubscriptionStatus: domain.SubscriptionActive}, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday})
	require.NoError(t, err)

	states := statesByStart(resp.Slots)
	assert.Equal(t, domain.SlotAvailable, states["10:30"])
	for _, s := range resp.Slots {
		if s.State == domain.SlotAvailable {
			assert.True(t, s.IsSelectable)
		}
	}
}

func TestExecute_ClosedDayReturnsReason(t *testing.T) {
	f := newFixture()

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Business{ID: 1, SubscriptionStatus: domain.SubscriptionActive}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: sunday, Mode: domain.ModeInShop})
	require.NoError(t, err)

	assert.False(t, resp.IsWorking)
	assert.Equal(t, availability.ClosureNotWorking, resp.ClosureReason)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, []string{gridClosed}, f.grids.results)
	f.appointments.AssertNotCalled(t, "GetWithFilter", mock.Anything, mock.Anything)
}

func TestExecute_OnLocationChoiceOpensSunday(t *testing.T) {
	f := newFixture()

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Business{ID: 1, SubscriptionStatus: domain.SubscriptionActive}, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: sunday, Mode: domain.ModeOnLocation})
	require.NoError(t, err)

	assert.True(t, resp.IsWorking)
	assert.Equal(t, domain.ModeOnLocation, resp.EffectiveMode)
	assert.Len(t, resp.Slots, 12)
}

func TestExecute_NotBookable(t *testing.T) {
	t.Run("business missing", func(t *testing.T) {
		f := newFixture()
		f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
		f.businesses.On("GetByID", mock.Anything, int64(1)).Return(nil, businessRepo.ErrBusinessNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday})
		assert.ErrorIs(t, err, ErrProviderNotBookable)
	})

	t.Run("expired subscription", func(t *testing.T) {
		f := newFixture()
		validUntil := now.AddDate(0, 0, -10)
		f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
		f.businesses.On("GetByID", mock.Anything, int64(1)).Return(&domain.Business{
			ID:                     1,
			SubscriptionStatus:     domain.SubscriptionPastDue,
			SubscriptionValidUntil: &validUntil,
		}, nil)

		_, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday})
		assert.ErrorIs(t, err, ErrProviderNotBookable)
		assert.Contains(t, err.Error(), string(availability.ReasonSubscriptionExpired))
	})
}

func TestExecute_Errors(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		_, err := newFixture().uc.Execute(context.Background(), &Request{ProviderID: 10, Date: "2026-13-01"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := newFixture().uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday, Mode: "home"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("provider not found", func(t *testing.T) {
		f := newFixture()
		f.providers.On("GetByID", mock.Anything, int64(10)).Return(nil, providerRepo.ErrProviderNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday})
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("appointments failure", func(t *testing.T) {
		f := newFixture()
		f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
		f.businesses.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Business{ID: 1, SubscriptionStatus: domain.SubscriptionActive}, nil)
		f.appointments.On("GetWithFilter", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := f.uc.Execute(context.Background(), &Request{ProviderID: 10, Date: thursday})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
