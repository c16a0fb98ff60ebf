package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ProviderID    int64
	Date          types.Date
	SlotTime      types.TimeString
	Mode          domain.BookingMode // пусто = в салоне
	ServiceIDs    []string
	CustomerName  string
	CustomerPhone string // в любом формате, нормализуется до E.164
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64
	ReferenceCode uuid.UUID
	ProviderID    int64
	BusinessID    int64
	Date          types.Date
	SlotTime      types.TimeString
	EndTime       types.TimeString
	TotalDuration int
	TotalPrice    decimal.Decimal
	Mode          domain.BookingMode
	Status        domain.AppointmentStatus
	CustomerName  string
	CustomerPhone string
	Services      []domain.Service
	CreatedAt     time.Time
}
