package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	businessRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/business"
	providerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/provider"
)

// Результаты расчета сетки для метрик
const (
	gridComputed = "computed"
	gridClosed   = "closed"
)

// UseCase use case для получения сетки слотов провайдера на день
type UseCase struct {
	providerRepo    ProviderRepository
	businessRepo    BusinessRepository
	appointmentRepo AppointmentRepository
	grids           GridRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	businessRepo BusinessRepository,
	appointmentRepo AppointmentRepository,
	grids GridRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo:    providerRepo,
		businessRepo:    businessRepo,
		appointmentRepo: appointmentRepo,
		grids:           grids,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения расписания на день.
// Алгоритм:
// 1. Провайдер доступен для записи (привязка к бизнесу, подписка)
// 2. Режим дня: работает ли провайдер и в каком режиме
// 3. Для рабочего дня: сетка 15-минутных ячеек с учетом записей, блокировок и буфера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: provider=%d, date=%s, mode=%s", req.ProviderID, req.Date, req.Mode)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	var business *domain.Business
	if provider.BusinessID != nil {
		business, err = uc.businessRepo.GetByID(ctx, *provider.BusinessID)
		if err != nil && !errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Error("GetDaySchedule: failed to get business id=%d: %v", *provider.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}
	}

	now := uc.timeProvider.Now()

	gate := availability.EvaluateBookability(provider, business, now)
	if !gate.Bookable {
		uc.logger.Warn("GetDaySchedule: provider id=%d is not bookable: %s", provider.ID, gate.Reason)
		return nil, fmt.Errorf("%w: %s", ErrProviderNotBookable, gate.Reason)
	}

	dayMode, err := availability.ResolveDayMode(provider, req.Date, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp := &Response{
		ProviderID:     provider.ID,
		Date:           req.Date,
		IsWorking:      dayMode.IsWorking,
		ClosureReason:  dayMode.ClosureReason,
		EffectiveMode:  dayMode.EffectiveMode,
		ShowModeChoice: dayMode.ShowModeChoice,
		Slots:          []Slot{},
	}

	if !dayMode.IsWorking {
		uc.grids.RecordSlotGrid(gridClosed)
		uc.logger.Info("GetDaySchedule: provider id=%d does not work on %s (%s)", provider.ID, req.Date, dayMode.ClosureReason)
		return resp, nil
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		ProviderID: &provider.ID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		booked = append(booked, *a)
	}

	slots, err := availability.ComputeSlots(
		provider,
		req.Date,
		booked,
		now,
		availability.SlotPolicy{WalkinBufferEnabled: business.EnableWalkinBuffer},
	)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	for i := range slots {
		resp.Slots = append(resp.Slots, Slot{
			StartTime:    slots[i].StartTime,
			EndTime:      slots[i].EndTime,
			State:        slots[i].State(),
			IsSelectable: slots[i].IsSelectable(),
		})
	}

	uc.grids.RecordSlotGrid(gridComputed)
	uc.logger.Info("GetDaySchedule: %d slots for provider id=%d on %s", len(resp.Slots), provider.ID, req.Date)

	return resp, nil
}
