package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/business"
	providerRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-BarberService/pkg/phone"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Исходы допуска для метрик
const (
	outcomeAdmitted        = "admitted"
	outcomeBlocked         = "customer_blocked"
	outcomeAlreadyBooked   = "already_booked_today"
	outcomeSlotUnavailable = "slot_unavailable"
	outcomeSlotConflict    = "slot_conflict"
)

// UseCase use case для создания записи к провайдеру
type UseCase struct {
	providerRepo     ProviderRepository
	businessRepo     BusinessRepository
	appointmentRepo  AppointmentRepository
	noShowTracker    NoShowTracker
	txManager        TransactionManager
	admissions       AdmissionRecorder
	timeProvider     TimeProvider
	newReferenceCode func() uuid.UUID
	phoneRegion      string
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	businessRepo BusinessRepository,
	appointmentRepo AppointmentRepository,
	noShowTracker NoShowTracker,
	txManager TransactionManager,
	admissions AdmissionRecorder,
	timeProvider TimeProvider,
	phoneRegion string,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		providerRepo:     providerRepo,
		businessRepo:     businessRepo,
		appointmentRepo:  appointmentRepo,
		noShowTracker:    noShowTracker,
		txManager:        txManager,
		admissions:       admissions,
		timeProvider:     timeProvider,
		newReferenceCode: uuid.New,
		phoneRegion:      phoneRegion,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
// Проверки допуска (блок-лист, одна запись в день) идут до транзакции, а повторный расчет
// сетки слотов и вставка выполняются в сериализуемой транзакции: пересчет ловит записи,
// созданные с момента показа расписания клиенту.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: provider=%d, date=%s, time=%s, mode=%s, services=%v",
		req.ProviderID, req.Date, req.SlotTime, req.Mode, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.phoneRegion); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	customerPhone := phone.Normalize(req.CustomerPhone, uc.phoneRegion)
	mode := req.Mode
	if mode == "" {
		mode = domain.ModeInShop
	}

	now := uc.timeProvider.Now()
	today := types.NewDate(now)

	if req.Date.Before(today) {
		uc.logger.Warn("CreateBooking: date %s is before today %s", req.Date, today)
		return nil, ErrDateInPast
	}

	// 2. Провайдер и его бизнес
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	business, err := uc.loadBusiness(ctx, provider)
	if err != nil {
		return nil, err
	}

	// 3. Провайдер доступен для записи
	gate := availability.EvaluateBookability(provider, business, now)
	if !gate.Bookable {
		uc.logger.Warn("CreateBooking: provider id=%d is not bookable: %s", provider.ID, gate.Reason)
		return nil, fmt.Errorf("%w: %s", ErrProviderNotBookable, gate.Reason)
	}

	services, err := resolveServices(provider, req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 4. Рабочий ли день в запрошенном режиме
	dayMode, err := availability.ResolveDayMode(provider, req.Date, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !dayMode.IsWorking {
		uc.logger.Warn("CreateBooking: provider id=%d does not work on %s (%s)", provider.ID, req.Date, dayMode.ClosureReason)
		return nil, fmt.Errorf("%w: %s", ErrDayClosed, dayMode.ClosureReason)
	}

	// 5. Допуск: блок-лист по неявкам и одна активная запись на сегодня
	blocked := false
	if business.TracksNoShows() {
		blocked, err = uc.noShowTracker.IsPhoneBlocked(ctx, business.ID, customerPhone)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check no-show blocklist: %v", err)
			return nil, fmt.Errorf("%w: failed to check blocklist: %v", ErrInternal, err)
		}
	}

	// одна запись на сегодня по телефону независимо от салона
	existing, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		CustomerPhone: &customerPhone,
		StartDate:     &today,
		EndDate:       &today,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get customer appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get customer appointments: %v", ErrInternal, err)
	}

	admission := availability.AdmitBooking(
		availability.BookingRequest{
			ProviderID:    provider.ID,
			BusinessID:    business.ID,
			Date:          req.Date,
			SlotTime:      req.SlotTime,
			Mode:          dayMode.EffectiveMode,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerPhone: customerPhone,
			Services:      services,
		},
		derefAppointments(existing),
		business.NoShowBlockLimit,
		func(string) bool { return blocked },
		today,
	)

	if !admission.Admitted {
		uc.logger.Warn("CreateBooking: booking rejected for provider id=%d: %s", provider.ID, admission.Reason)
		switch admission.Reason {
		case availability.RejectCustomerBlocked:
			uc.admissions.RecordAdmission(outcomeBlocked)
			return nil, ErrCustomerBlocked
		default:
			uc.admissions.RecordAdmission(outcomeAlreadyBooked)
			return nil, ErrAlreadyBookedToday
		}
	}

	appointment := admission.Appointment
	appointment.ReferenceCode = uc.newReferenceCode()

	// 6. Повторный расчет слотов и вставка в одной транзакции
	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		fresh, err := uc.providerRepo.GetByID(txCtx, provider.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to reload provider id=%d: %v", provider.ID, err)
			return fmt.Errorf("%w: failed to reload provider: %v", ErrInternal, err)
		}

		freshDay, err := availability.ResolveDayMode(fresh, req.Date, mode)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !freshDay.IsWorking {
			uc.logger.Warn("CreateBooking: provider id=%d closed %s in the meantime", provider.ID, req.Date)
			return fmt.Errorf("%w: %s", ErrDayClosed, freshDay.ClosureReason)
		}

		booked, err := uc.appointmentRepo.GetWithFilter(txCtx, domain.AppointmentsFilter{
			ProviderID: &provider.ID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get provider appointments: %v", err)
			return fmt.Errorf("%w: failed to get provider appointments: %v", ErrInternal, err)
		}

		slots, err := availability.ComputeSlots(
			fresh,
			req.Date,
			derefAppointments(booked),
			now,
			availability.SlotPolicy{WalkinBufferEnabled: business.EnableWalkinBuffer},
		)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}

		problem, err := availability.CheckSlotSelection(slots, req.SlotTime, appointment.TotalDuration, fresh.WorkEndTime)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if problem != availability.SelectionOK {
			uc.logger.Warn("CreateBooking: slot %s+%dmin rejected: %s", req.SlotTime, appointment.TotalDuration, problem)
			return fmt.Errorf("%w: %s", ErrSlotUnavailable, problem)
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict), errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("CreateBooking: slot conflict for provider id=%d at %s %s", provider.ID, req.Date, req.SlotTime)
			uc.admissions.RecordAdmission(outcomeSlotConflict)
			return nil, ErrSlotConflict
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrDayClosed):
			uc.admissions.RecordAdmission(outcomeSlotUnavailable)
			return nil, err
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.admissions.RecordAdmission(outcomeAdmitted)
	uc.logger.Info("CreateBooking: created appointment id=%d ref=%s", result.ID, result.ReferenceCode)

	return toResponse(result), nil
}

// loadBusiness получает бизнес провайдера. Непривязанный провайдер или удаленный бизнес
// дают nil: такой провайдер не пройдет проверку доступности.
func (uc *UseCase) loadBusiness(ctx context.Context, provider *domain.Provider) (*domain.Business, error) {
	if provider.BusinessID == nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotBookable, availability.ReasonProviderUnlinked)
	}

	business, err := uc.businessRepo.GetByID(ctx, *provider.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d of provider id=%d not found", *provider.BusinessID, provider.ID)
			return nil, fmt.Errorf("%w: %s", ErrProviderNotBookable, availability.ReasonProviderUnlinked)
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", *provider.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	return business, nil
}

func toResponse(a *domain.Appointment) *Response {
	endTime, err := a.SlotTime.AddMinutes(a.TotalDuration)
	if err != nil {
		endTime = ""
	}

	return &Response{
		ID:            a.ID,
		ReferenceCode: a.ReferenceCode,
		ProviderID:    a.ProviderID,
		BusinessID:    a.BusinessID,
		Date:          a.Date,
		SlotTime:      a.SlotTime,
		EndTime:       endTime,
		TotalDuration: a.TotalDuration,
		TotalPrice:    a.TotalPrice,
		Mode:          a.Mode,
		Status:        a.Status,
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		Services:      a.Services,
		CreatedAt:     a.CreatedAt,
	}
}
