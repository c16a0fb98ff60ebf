package manage_schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type ScheduleService interface {
	CreateProvider(ctx context.Context, req *models.CreateProviderRequest) (*models.ScheduleResponse, error)
	GetSchedule(ctx context.Context, providerID int64) (*models.ScheduleResponse, error)
	UpdateWorkSettings(ctx context.Context, providerID int64, req *models.WorkSettingsRequest) (*models.ScheduleResponse, error)
	SetScheduleOverride(ctx context.Context, providerID int64, req *models.ScheduleOverrideRequest) (*models.ScheduleResponse, error)
	DeleteScheduleOverride(ctx context.Context, providerID int64, date types.Date) (*models.ScheduleResponse, error)
	SetLocationOverride(ctx context.Context, providerID int64, req *models.LocationOverrideRequest) (*models.ScheduleResponse, error)
	AddTimeOff(ctx context.Context, providerID int64, req *models.TimeOffRequest) (*models.ScheduleResponse, error)
	DeleteTimeOff(ctx context.Context, providerID int64, startDate types.Date) (*models.ScheduleResponse, error)
	AddBlockedSlot(ctx context.Context, providerID int64, req *models.BlockedSlotRequest) (*models.ScheduleResponse, error)
	DeleteBlockedSlot(ctx context.Context, providerID int64, blockID string) (*models.ScheduleResponse, error)
	ReplaceServices(ctx context.Context, providerID int64, req *models.ServicesRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
