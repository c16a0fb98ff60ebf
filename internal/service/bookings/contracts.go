package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByReferenceCode(ctx context.Context, code uuid.UUID) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// NoShowTracker счетчик неявок и блок-лист телефонов
type NoShowTracker interface {
	IsPhoneBlocked(ctx context.Context, businessID int64, phone string) (bool, error)
	RecordNoShow(ctx context.Context, businessID int64, phone string, limit int) (int64, bool, error)
	NoShowCount(ctx context.Context, businessID int64, phone string) (int64, error)
	Unblock(ctx context.Context, businessID int64, phone string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
