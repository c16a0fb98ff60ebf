package availability

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

const customerPhone = "+32470000000"

func bookingRequest() BookingRequest {
	return BookingRequest{
		ProviderID:    10,
		BusinessID:    1,
		Date:          tuesday,
		SlotTime:      "10:00",
		Mode:          domain.ModeInShop,
		CustomerName:  "Jan",
		CustomerPhone: customerPhone,
		Services: []domain.Service{
			{ID: "cut", Name: "Haircut", Price: decimal.RequireFromString("25.50"), DurationMinutes: 30},
			{ID: "beard", Name: "Beard trim", Price: decimal.RequireFromString("12.25"), DurationMinutes: 15},
		},
	}
}

func neverBlocked(string) bool { return false }

func TestAdmitBooking_BuildsAppointment(t *testing.T) {
	got := AdmitBooking(bookingRequest(), nil, 3, neverBlocked, tuesday)

	require.True(t, got.Admitted)
	assert.Empty(t, got.Reason)
	require.NotNil(t, got.Appointment)

	a := got.Appointment
	assert.Equal(t, int64(10), a.ProviderID)
	assert.Equal(t, int64(1), a.BusinessID)
	assert.Equal(t, tuesday, a.Date)
	assert.Equal(t, "10:00", a.SlotTime.String())
	assert.Equal(t, 45, a.TotalDuration)
	assert.True(t, decimal.RequireFromString("37.75").Equal(a.TotalPrice), "total price %s", a.TotalPrice)
	assert.Equal(t, domain.StatusBooked, a.Status)
	assert.Equal(t, customerPhone, a.CustomerPhone)
	assert.Len(t, a.Services, 2)
}

func TestAdmitBooking_AlreadyBookedToday(t *testing.T) {
	existing := []domain.Appointment{
		{ID: 1, Date: tuesday, SlotTime: "12:00", Status: domain.StatusBooked, CustomerPhone: customerPhone},
	}

	got := AdmitBooking(bookingRequest(), existing, 0, neverBlocked, tuesday)

	assert.False(t, got.Admitted)
	assert.Equal(t, RejectAlreadyBookedToday, got.Reason)
	assert.Nil(t, got.Appointment)
}

func TestAdmitBooking_OnlyActiveBookingsOfTodayCount(t *testing.T) {
	tests := []struct {
		name     string
		existing domain.Appointment
	}{
		{
			name:     "cancelled today",
			existing: domain.Appointment{Date: tuesday, Status: domain.StatusCancelled, CustomerPhone: customerPhone},
		},
		{
			name:     "completed today",
			existing: domain.Appointment{Date: tuesday, Status: domain.StatusCompleted, CustomerPhone: customerPhone},
		},
		{
			name:     "booked on another day",
			existing: domain.Appointment{Date: wednesday, Status: domain.StatusBooked, CustomerPhone: customerPhone},
		},
		{
			name:     "booked today by someone else",
			existing: domain.Appointment{Date: tuesday, Status: domain.StatusBooked, CustomerPhone: "+32470000001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdmitBooking(bookingRequest(), []domain.Appointment{tt.existing}, 0, neverBlocked, tuesday)
			assert.True(t, got.Admitted)
		})
	}
}

func TestAdmitBooking_BlockedPhone(t *testing.T) {
	blocked := func(phone string) bool { return phone == customerPhone }

	got := AdmitBooking(bookingRequest(), nil, 3, blocked, tuesday)
	assert.False(t, got.Admitted)
	assert.Equal(t, RejectCustomerBlocked, got.Reason)

	t.Run("blocklist ignored when business does not track no-shows", func(t *testing.T) {
		got := AdmitBooking(bookingRequest(), nil, 0, blocked, tuesday)
		assert.True(t, got.Admitted)
	})

	t.Run("blocked check runs before the daily limit", func(t *testing.T) {
		existing := []domain.Appointment{{Date: tuesday, Status: domain.StatusBooked, CustomerPhone: customerPhone}}
		got := AdmitBooking(bookingRequest(), existing, 3, blocked, tuesday)
		assert.Equal(t, RejectCustomerBlocked, got.Reason)
	})

	t.Run("nil lookup means nobody is blocked", func(t *testing.T) {
		got := AdmitBooking(bookingRequest(), nil, 3, nil, tuesday)
		assert.True(t, got.Admitted)
	})
}

func TestAdmitBooking_DoesNotAliasRequestServices(t *testing.T) {
	req := bookingRequest()
	got := AdmitBooking(req, nil, 0, neverBlocked, tuesday)
	require.True(t, got.Admitted)

	req.Services[0].Name = "changed"
	assert.Equal(t, "Haircut", got.Appointment.Services[0].Name)
}
