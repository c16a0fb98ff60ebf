package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment represents a customer's visit to a provider
type Appointment struct {
	ID            int64
	ReferenceCode uuid.UUID // публичный код записи для клиента
	ProviderID    int64
	BusinessID    int64
	Date          types.Date
	SlotTime      types.TimeString
	TotalDuration int // minutes
	TotalPrice    decimal.Decimal
	Mode          BookingMode
	Status        AppointmentStatus

	CustomerName  string
	CustomerPhone string // E.164

	// Services snapshot at booking time
	Services []Service

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OccupiesTime returns true if the appointment still holds its time range on the grid.
// Only booked appointments do, same as the overlap constraint in the database.
func (a *Appointment) OccupiesTime() bool {
	return a.Status == StatusBooked
}

// IsBooked returns true if the appointment is upcoming and active
func (a *Appointment) IsBooked() bool {
	return a.Status == StatusBooked
}

// CanTransitionTo returns true if the status change is allowed.
// Only booked appointments can be cancelled, completed or marked as no-show.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != StatusBooked {
		return false
	}
	return next == StatusCancelled || next == StatusCompleted || next == StatusNoShow
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	ProviderID      *int64             // Фильтр по провайдеру (опционально)
	BusinessID      *int64             // Фильтр по бизнесу (опционально)
	CustomerPhone   *string            // Фильтр по телефону клиента (опционально)
	StartDate       *types.Date        // Начало периода (опционально)
	EndDate         *types.Date        // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные записи
}

// IsSingleDay returns true if the filter targets exactly one date
func (f AppointmentsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && *f.StartDate == *f.EndDate
}
