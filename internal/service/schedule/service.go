package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/business"
	providerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Service сервис записи расписания провайдера: недельное расписание, исключения на даты,
// отпуска, ручные блокировки и услуги. Ядро расчета доступности только читает эти данные.
type Service struct {
	providerRepo ProviderRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	validator    *requestValidator
	newID        func() uuid.UUID
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	providerRepo ProviderRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		providerRepo: providerRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		validator:    newRequestValidator(),
		newID:        uuid.New,
		logger:       logger,
	}
}

// CreateProvider создает провайдера. Провайдер без бизнеса сохраняется, но недоступен для записи.
func (s *Service) CreateProvider(ctx context.Context, req *models.CreateProviderRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("CreateProvider: name=%q business=%v", req.Name, req.BusinessID)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("CreateProvider: validation failed: %v", err)
		return nil, err
	}

	if req.BusinessID != nil {
		if _, err := s.businessRepo.GetByID(ctx, *req.BusinessID); err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				s.logger.Warn("CreateProvider: business id=%d not found", *req.BusinessID)
				return nil, ErrBusinessNotFound
			}
			s.logger.Error("CreateProvider: failed to get business id=%d: %v", *req.BusinessID, err)
			return nil, fmt.Errorf("%w: CreateProvider - repository error: %v", ErrInternal, err)
		}
	}

	p := &domain.Provider{
		BusinessID: req.BusinessID,
		Name:       req.Name,
	}
	if err := applyWorkSettings(p, &req.WorkSettings); err != nil {
		return nil, err
	}
	services, err := toDomainServices(req.Services)
	if err != nil {
		return nil, err
	}
	p.Services = services

	created, err := s.providerRepo.Create(ctx, p)
	if err != nil {
		s.logger.Error("CreateProvider: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProvider: created provider id=%d", created.ID)
	return models.FromDomainProvider(created), nil
}

// GetSchedule возвращает расписание провайдера
func (s *Service) GetSchedule(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
	p, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, s.mapRepoError("GetSchedule", providerID, err)
	}
	return models.FromDomainProvider(p), nil
}

// UpdateWorkSettings меняет рабочее окно, недельное расписание и буфер.
// Исключения на даты, совпавшие с новым недельным расписанием, удаляются.
func (s *Service) UpdateWorkSettings(ctx context.Context, providerID int64, req *models.WorkSettingsRequest) (*models.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("UpdateWorkSettings: validation failed: %v", err)
		return nil, err
	}

	return s.mutate(ctx, "UpdateWorkSettings", providerID, func(p *domain.Provider) error {
		if err := applyWorkSettings(p, req); err != nil {
			return err
		}
		if removed := canonicalizeOverrides(p); removed > 0 {
			s.logger.Info("UpdateWorkSettings: dropped %d redundant overrides of provider id=%d", removed, providerID)
		}
		return nil
	})
}

// SetScheduleOverride открывает или закрывает дату.
// Исключение, совпадающее с недельным расписанием, не хранится: существующее на эту дату удаляется.
func (s *Service) SetScheduleOverride(ctx context.Context, providerID int64, req *models.ScheduleOverrideRequest) (*models.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	date := types.Date(req.Date)
	override := domain.ScheduleOverride{Closed: req.Closed}

	return s.mutate(ctx, "SetScheduleOverride", providerID, func(p *domain.Provider) error {
		if isRedundantOverride(p, date, override) {
			delete(p.ScheduleOverrides, date)
			return nil
		}
		if p.ScheduleOverrides == nil {
			p.ScheduleOverrides = make(map[types.Date]domain.ScheduleOverride)
		}
		p.ScheduleOverrides[date] = override
		return nil
	})
}

// DeleteScheduleOverride возвращает дату к недельному расписанию
func (s *Service) DeleteScheduleOverride(ctx context.Context, providerID int64, date types.Date) (*models.ScheduleResponse, error) {
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	return s.mutate(ctx, "DeleteScheduleOverride", providerID, func(p *domain.Provider) error {
		delete(p.ScheduleOverrides, date)
		return nil
	})
}

// SetLocationOverride фиксирует режим визита на дату или снимает фиксацию при пустом режиме
func (s *Service) SetLocationOverride(ctx context.Context, providerID int64, req *models.LocationOverrideRequest) (*models.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	date := types.Date(req.Date)

	return s.mutate(ctx, "SetLocationOverride", providerID, func(p *domain.Provider) error {
		if req.Mode == "" {
			delete(p.DailyLocationOverrides, date)
			return nil
		}
		if p.DailyLocationOverrides == nil {
			p.DailyLocationOverrides = make(map[types.Date]domain.LocationOverride)
		}
		p.DailyLocationOverrides[date] = domain.LocationOverride(req.Mode)
		return nil
	})
}

// AddTimeOff добавляет отпуск
func (s *Service) AddTimeOff(ctx context.Context, providerID int64, req *models.TimeOffRequest) (*models.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	timeOff := domain.TimeOff{StartDate: types.Date(req.StartDate), EndDate: types.Date(req.EndDate)}
	if timeOff.EndDate.Before(timeOff.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	return s.mutate(ctx, "AddTimeOff", providerID, func(p *domain.Provider) error {
		p.TimeOff = append(p.TimeOff, timeOff)
		return nil
	})
}

// DeleteTimeOff удаляет отпуск, начинающийся в startDate
func (s *Service) DeleteTimeOff(ctx context.Context, providerID int64, startDate types.Date) (*models.ScheduleResponse, error) {
	if err := startDate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}

	return s.mutate(ctx, "DeleteTimeOff", providerID, func(p *domain.Provider) error {
		before := len(p.TimeOff)
		p.TimeOff = slices.DeleteFunc(p.TimeOff, func(t domain.TimeOff) bool { return t.StartDate == startDate })
		if len(p.TimeOff) == before {
			return ErrTimeOffNotFound
		}
		return nil
	})
}

// AddBlockedSlot блокирует время на дату. Уже существующие записи блокировка не отменяет.
func (s *Service) AddBlockedSlot(ctx context.Context, providerID int64, req *models.BlockedSlotRequest) (*models.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	block := domain.BlockedSlot{
		ID:              s.newID().String(),
		Date:            types.Date(req.Date),
		StartTime:       types.TimeString(req.StartTime),
		DurationMinutes: req.Duration,
	}

	return s.mutate(ctx, "AddBlockedSlot", providerID, func(p *domain.Provider) error {
		p.BlockedSlots = append(p.BlockedSlots, block)
		return nil
	})
}

// DeleteBlockedSlot снимает ручную блокировку
func (s *Service) DeleteBlockedSlot(ctx context.Context, providerID int64, blockID string) (*models.ScheduleResponse, error) {
	return s.mutate(ctx, "DeleteBlockedSlot", providerID, func(p *domain.Provider) error {
		before := len(p.BlockedSlots)
		p.BlockedSlots = slices.DeleteFunc(p.BlockedSlots, func(b domain.BlockedSlot) bool { return b.ID == blockID })
		if len(p.BlockedSlots) == before {
			return ErrBlockedSlotNotFound
		}
		return nil
	})
}

// ReplaceServices заменяет список услуг. Уже созданные записи хранят свой снимок услуг.
func (s *Service) ReplaceServices(ctx context.Context, providerID int64, req *models.ServicesRequest) (*models.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	services, err := toDomainServices(req.Services)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, "ReplaceServices", providerID, func(p *domain.Provider) error {
		p.Services = services
		return nil
	})
}

// mutate читает провайдера под блокировкой строки, применяет изменение и сохраняет расписание
func (s *Service) mutate(
	ctx context.Context,
	op string,
	providerID int64,
	change func(p *domain.Provider) error,
) (*models.ScheduleResponse, error) {
	s.logger.Info("%s: provider id=%d", op, providerID)

	var updated *domain.Provider

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := s.providerRepo.GetByID(txCtx, providerID)
		if err != nil {
			return s.mapRepoError(op, providerID, err)
		}

		if err := change(p); err != nil {
			return err
		}

		if err := s.providerRepo.UpdateSchedule(txCtx, p); err != nil {
			return s.mapRepoError(op, providerID, err)
		}

		updated = p
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderNotFound),
			errors.Is(err, ErrBlockedSlotNotFound),
			errors.Is(err, ErrTimeOffNotFound),
			errors.Is(err, ErrInvalidInput),
			errors.Is(err, ErrInternal):
			s.logger.Warn("%s: provider id=%d: %v", op, providerID, err)
			return nil, err
		default:
			s.logger.Error("%s: transaction failed: %v", op, err)
			return nil, fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
		}
	}

	s.logger.Info("%s: provider id=%d updated", op, providerID)
	return models.FromDomainProvider(updated), nil
}

func (s *Service) mapRepoError(op string, providerID int64, err error) error {
	if errors.Is(err, providerRepo.ErrProviderNotFound) {
		return ErrProviderNotFound
	}
	s.logger.Error("%s: repository error for provider id=%d: %v", op, providerID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func applyWorkSettings(p *domain.Provider, req *models.WorkSettingsRequest) error {
	start, end := types.TimeString(req.WorkStartTime), types.TimeString(req.WorkEndTime)
	// Пустое окно допустимо как конфигурация, но с API его не принимаем
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: workStartTime must be before workEndTime", ErrInvalidInput)
	}

	mode := domain.OnLocationMode(req.OnLocationMode)
	if mode == "" {
		mode = domain.OnLocationNone
	}

	p.WorkStartTime = start
	p.WorkEndTime = end
	p.RecurringClosedDays = models.ToWeekdays(req.RecurringClosedDays)
	p.OnLocationMode = mode
	p.OnLocationDays = models.ToWeekdays(req.OnLocationDays)
	p.EnableWalkinBuffer = req.EnableWalkinBuffer
	p.WalkinBufferMinutes = req.WalkinBufferMinutes
	return nil
}

func toDomainServices(items []models.ServiceRequest) ([]domain.Service, error) {
	services := make([]domain.Service, 0, len(items))
	for _, item := range items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: service %s price: %v", ErrInvalidInput, item.ID, err)
		}
		services = append(services, domain.Service{
			ID:              item.ID,
			Name:            item.Name,
			Price:           price,
			DurationMinutes: item.Duration,
		})
	}
	return services, nil
}
