package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	providerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// --- mocks ---

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

func (m *MockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Appointment) *domain.Appointment); ok {
		return fn(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) GetWithFilter(ctx context.Context, f domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type MockNoShowTracker struct{ mock.Mock }

func (m *MockNoShowTracker) IsPhoneBlocked(ctx context.Context, businessID int64, phone string) (bool, error) {
	args := m.Called(ctx, businessID, phone)
	return args.Bool(0), args.Error(1)
}

type stubTxManager struct{ err error }

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

type admissionSpy struct{ outcomes []string }

func (s *admissionSpy) RecordAdmission(outcome string) { s.outcomes = append(s.outcomes, outcome) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// --- fixtures ---

const (
	tuesday types.Date = "2026-10-13"
	sunday  types.Date = "2026-10-18"
)

var (
	refCode = uuid.MustParse("0b6f5c1e-8f0a-4a9e-9d38-3f3a1c1f2d77")
	nowTue  = time.Date(2026, 10, 13, 8, 0, 0, 0, time.UTC)
)

func testProvider() *domain.Provider {
	businessID := int64(1)
	return &domain.Provider{
		ID:                  10,
		BusinessID:          &businessID,
		Name:                "Tom",
		WorkStartTime:       "09:00",
		WorkEndTime:         "18:00",
		RecurringClosedDays: []time.Weekday{time.Sunday},
		OnLocationMode:      domain.OnLocationNone,
		Services: []domain.Service{
			{ID: "cut", Name: "Haircut", Price: decimal.NewFromInt(25), DurationMinutes: 30},
			{ID: "beard", Name: "Beard trim", Price: decimal.NewFromInt(15), DurationMinutes: 15},
		},
	}
}

func testBusiness() *domain.Business {
	return &domain.Business{ID: 1, Name: "Fade Factory", SubscriptionStatus: domain.SubscriptionActive}
}

func testRequest() *Request {
	return &Request{
		ProviderID:    10,
		Date:          tuesday,
		SlotTime:      "10:00",
		ServiceIDs:    []string{"cut"},
		CustomerName:  "Jan",
		CustomerPhone: "0470 00 00 00",
	}
}

type fixture struct {
	providers    *MockProviderRepo
	businesses   *MockBusinessRepo
	appointments *MockAppointmentRepo
	noShow       *MockNoShowTracker
	tx           *stubTxManager
	admissions   *admissionSpy
	uc           *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		providers:    new(MockProviderRepo),
		businesses:   new(MockBusinessRepo),
		appointments: new(MockAppointmentRepo),
		noShow:       new(MockNoShowTracker),
		tx:           &stubTxManager{},
		admissions:   &admissionSpy{},
	}
	f.uc = NewUseCase(
		f.providers,
		f.businesses,
		f.appointments,
		f.noShow,
		f.tx,
		f.admissions,
		fixedTime{now: nowTue},
		"BE",
		logger.Nop(),
	)
	f.uc.newReferenceCode = func() uuid.UUID { return refCode }

	t.Cleanup(func() {
		f.providers.AssertExpectations(t)
		f.businesses.AssertExpectations(t)
		f.appointments.AssertExpectations(t)
		f.noShow.AssertExpectations(t)
	})

	return f
}

func customerFilter(f domain.AppointmentsFilter) bool {
	return f.CustomerPhone != nil && f.ProviderID == nil
}

func providerDayFilter(f domain.AppointmentsFilter) bool {
	return f.ProviderID != nil && f.IsSingleDay()
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(customerFilter)).
		Return([]*domain.Appointment{}, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(providerDayFilter)).
		Return([]*domain.Appointment{
			{ID: 1, ProviderID: 10, Date: tuesday, SlotTime: "09:00", TotalDuration: 60, Status: domain.StatusBooked},
		}, nil)
	f.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.CustomerPhone == "+32470000000" &&
			a.ReferenceCode == refCode &&
			a.TotalDuration == 30 &&
			a.Mode == domain.ModeInShop &&
			a.Status == domain.StatusBooked
	})).Return(func(_ context.Context, a *domain.Appointment) *domain.Appointment {
		a.ID = 99
		a.CreatedAt = nowTue
		return a
	}, nil)

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(99), resp.ID)
	assert.Equal(t, refCode, resp.ReferenceCode)
	assert.Equal(t, types.TimeString("10:00"), resp.SlotTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.True(t, decimal.NewFromInt(25).Equal(resp.TotalPrice))
	assert.Equal(t, "+32470000000", resp.CustomerPhone)
	assert.Equal(t, []string{outcomeAdmitted}, f.admissions.outcomes)
}

func TestExecute_MultipleServicesSumDuration(t *testing.T) {
	f := newFixture(t)

	// 10:00 + 45 минут упирается в запись в 10:30
	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(customerFilter)).
		Return([]*domain.Appointment{}, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(providerDayFilter)).
		Return([]*domain.Appointment{
			{ID: 1, ProviderID: 10, Date: tuesday, SlotTime: "10:30", TotalDuration: 30, Status: domain.StatusBooked},
		}, nil)

	req := testRequest()
	req.ServiceIDs = []string{"cut", "beard"}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []string{outcomeSlotUnavailable}, f.admissions.outcomes)
	f.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_CustomerBlocked(t *testing.T) {
	f := newFixture(t)

	business := testBusiness()
	business.NoShowBlockLimit = 3

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(business, nil)
	f.noShow.On("IsPhoneBlocked", mock.Anything, int64(1), "+32470000000").Return(true, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(customerFilter)).
		Return([]*domain.Appointment{}, nil)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrCustomerBlocked)
	assert.Equal(t, []string{outcomeBlocked}, f.admissions.outcomes)
}

func TestExecute_BlocklistIgnoredWithoutLimit(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(customerFilter)).
		Return([]*domain.Appointment{}, nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(providerDayFilter)).
		Return([]*domain.Appointment{}, nil)
	f.appointments.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Appointment{ID: 5, SlotTime: "10:00", TotalDuration: 30}, nil)

	_, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	f.noShow.AssertNotCalled(t, "IsPhoneBlocked", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_AlreadyBookedToday(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(customerFilter)).
		Return([]*domain.Appointment{
			{ID: 3, Date: tuesday, SlotTime: "16:00", Status: domain.StatusBooked, CustomerPhone: "+32470000000"},
		}, nil)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrAlreadyBookedToday)
	assert.Equal(t, []string{outcomeAlreadyBooked}, f.admissions.outcomes)
}

func TestExecute_AlreadyBookedTodayAtAnotherBusiness(t *testing.T) {
	f := newFixture(t)

	anyBusiness := func(flt domain.AppointmentsFilter) bool {
		return customerFilter(flt) && flt.BusinessID == nil
	}

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(anyBusiness)).
		Return([]*domain.Appointment{
			{ID: 7, BusinessID: 2, ProviderID: 20, Date: tuesday, SlotTime: "09:00", Status: domain.StatusBooked, CustomerPhone: "+32470000000"},
		}, nil)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrAlreadyBookedToday)
	f.appointments.AssertExpectations(t)
}

func TestExecute_ConcurrentInsertIsConflict(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{}, nil)
	f.appointments.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: provider_id=10", appointmentRepo.ErrSlotConflict))

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, []string{outcomeSlotConflict}, f.admissions.outcomes)
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	f := newFixture(t)
	f.tx.err = fmt.Errorf("%w: could not serialize access", txmanager.ErrSerialization)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)
	f.appointments.On("GetWithFilter", mock.Anything, mock.MatchedBy(customerFilter)).
		Return([]*domain.Appointment{}, nil)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(nil, providerRepo.ErrProviderNotFound)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ProviderNotBookable(t *testing.T) {
	t.Run("cancelled subscription", func(t *testing.T) {
		f := newFixture(t)
		business := testBusiness()
		business.SubscriptionStatus = domain.SubscriptionCancelled

		f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
		f.businesses.On("GetByID", mock.Anything, int64(1)).Return(business, nil)

		_, err := f.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrProviderNotBookable)
		assert.Contains(t, err.Error(), "subscription_cancelled")
	})

	t.Run("unlinked provider", func(t *testing.T) {
		f := newFixture(t)
		p := testProvider()
		p.BusinessID = nil

		f.providers.On("GetByID", mock.Anything, int64(10)).Return(p, nil)

		_, err := f.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrProviderNotBookable)
	})
}

func TestExecute_DayClosed(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)

	req := testRequest()
	req.Date = sunday

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_UnknownService(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(testProvider(), nil)
	f.businesses.On("GetByID", mock.Anything, int64(1)).Return(testBusiness(), nil)

	req := testRequest()
	req.ServiceIDs = []string{"perm"}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(t)

	req := testRequest()
	req.Date = "2026-10-12"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no provider", mutate: func(r *Request) { r.ProviderID = 0 }},
		{name: "bad date", mutate: func(r *Request) { r.Date = "13.10.2026" }},
		{name: "bad time", mutate: func(r *Request) { r.SlotTime = "25:00" }},
		{name: "unknown mode", mutate: func(r *Request) { r.Mode = "teleport" }},
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "duplicate services", mutate: func(r *Request) { r.ServiceIDs = []string{"cut", "cut"} }},
		{name: "blank name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "bad phone", mutate: func(r *Request) { r.CustomerPhone = "12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := testRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	f := newFixture(t)

	f.providers.On("GetByID", mock.Anything, int64(10)).Return(nil, errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
