package customer_standing

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
)

type BookingService interface {
	CustomerStanding(ctx context.Context, businessID int64, rawPhone string) (*models.CustomerStandingResponse, error)
	UnblockCustomer(ctx context.Context, businessID int64, rawPhone string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
