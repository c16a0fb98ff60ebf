package availability

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// RejectionReason why a booking request is not admitted
type RejectionReason string

const (
	RejectCustomerBlocked    RejectionReason = "CUSTOMER_BLOCKED"
	RejectAlreadyBookedToday RejectionReason = "ALREADY_BOOKED_TODAY"
)

// BookingRequest proposed booking. CustomerPhone must already be normalized.
type BookingRequest struct {
	ProviderID    int64
	BusinessID    int64
	Date          types.Date
	SlotTime      types.TimeString
	Mode          domain.BookingMode
	CustomerName  string
	CustomerPhone string
	Services      []domain.Service
}

// Admission outcome of AdmitBooking. Appointment is set only when Admitted.
type Admission struct {
	Admitted    bool
	Reason      RejectionReason
	Appointment *domain.Appointment
}

// AdmitBooking checks a request against the no-show blocklist and the one-booking-per-day rule,
// then builds the appointment record to hand to storage.
//
// existing holds the appointments known for the customer's phone; today is the current
// calendar date. The check does not look at slot collisions: the caller re-resolves the grid
// right before persisting.
func AdmitBooking(
	req BookingRequest,
	existing []domain.Appointment,
	noShowBlockLimit int,
	isPhoneBlocked func(phone string) bool,
	today types.Date,
) Admission {
	if noShowBlockLimit > 0 && isPhoneBlocked != nil && isPhoneBlocked(req.CustomerPhone) {
		return Admission{Reason: RejectCustomerBlocked}
	}

	for i := range existing {
		a := &existing[i]
		if a.CustomerPhone == req.CustomerPhone && a.Date == today && a.IsBooked() {
			return Admission{Reason: RejectAlreadyBookedToday}
		}
	}

	totalPrice := decimal.Zero
	totalDuration := 0
	services := make([]domain.Service, len(req.Services))
	for i, s := range req.Services {
		totalPrice = totalPrice.Add(s.Price)
		totalDuration += s.DurationMinutes
		services[i] = s
	}

	return Admission{
		Admitted: true,
		Appointment: &domain.Appointment{
			ProviderID:    req.ProviderID,
			BusinessID:    req.BusinessID,
			Date:          req.Date,
			SlotTime:      req.SlotTime,
			TotalDuration: totalDuration,
			TotalPrice:    totalPrice,
			Mode:          req.Mode,
			Status:        domain.StatusBooked,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Services:      services,
		},
	}
}
