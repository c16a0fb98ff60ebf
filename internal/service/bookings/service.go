package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/business"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberService/pkg/phone"
)

// Service сервис для работы с записями после их создания
type Service struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	noShowTracker   NoShowTracker
	txManager       TransactionManager
	phoneRegion     string
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	noShowTracker NoShowTracker,
	txManager TransactionManager,
	phoneRegion string,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		noShowTracker:   noShowTracker,
		txManager:       txManager,
		phoneRegion:     phoneRegion,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetByReferenceCode получает запись по публичному коду, который видит клиент
func (s *Service) GetByReferenceCode(ctx context.Context, code uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByReferenceCode: fetching appointment ref=%s", code)

	appointment, err := s.appointmentRepo.GetByReferenceCode(ctx, code)
	if err != nil {
		return nil, s.mapRepoError("GetByReferenceCode", err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByPhone получает записи клиента по телефону.
// Телефон нормализуется так же, как при создании записи.
func (s *Service) ListByPhone(ctx context.Context, req *models.ListByPhoneRequest) (*models.AppointmentListResponse, error) {
	if !phone.IsValid(req.Phone, s.phoneRegion) {
		s.logger.Warn("ListByPhone: invalid phone")
		return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}
	customerPhone := phone.Normalize(req.Phone, s.phoneRegion)

	filter := domain.AppointmentsFilter{
		BusinessID:      req.BusinessID,
		CustomerPhone:   &customerPhone,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByPhone: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByPhone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByPhone: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись в cancelled, completed или no-show.
// Менять можно только активную (booked) запись. Неявка увеличивает счетчик телефона
// в салоне и блокирует его по достижении лимита бизнеса.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.StatusChangeResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d -> %s", id, req.Status)

	next, err := models.ToDomainStatus(req.Status)
	if err != nil || next == domain.StatusBooked {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	return s.transition(ctx, "UpdateStatus", func(txCtx context.Context) (*domain.Appointment, error) {
		return s.appointmentRepo.GetByID(txCtx, id)
	}, next)
}

// CancelByReferenceCode отмена записи клиентом по публичному коду
func (s *Service) CancelByReferenceCode(ctx context.Context, code uuid.UUID) (*models.StatusChangeResponse, error) {
	s.logger.Info("CancelByReferenceCode: ref=%s", code)

	return s.transition(ctx, "CancelByReferenceCode", func(txCtx context.Context) (*domain.Appointment, error) {
		return s.appointmentRepo.GetByReferenceCode(txCtx, code)
	}, domain.StatusCancelled)
}

// CustomerStanding возвращает число неявок телефона в салоне и признак блокировки
func (s *Service) CustomerStanding(ctx context.Context, businessID int64, rawPhone string) (*models.CustomerStandingResponse, error) {
	customerPhone, err := s.normalizeForBusiness(ctx, "CustomerStanding", businessID, rawPhone)
	if err != nil {
		return nil, err
	}

	count, err := s.noShowTracker.NoShowCount(ctx, businessID, customerPhone)
	if err != nil {
		s.logger.Error("CustomerStanding: tracker error: %v", err)
		return nil, fmt.Errorf("%w: CustomerStanding - tracker error: %v", ErrInternal, err)
	}

	blocked, err := s.noShowTracker.IsPhoneBlocked(ctx, businessID, customerPhone)
	if err != nil {
		s.logger.Error("CustomerStanding: tracker error: %v", err)
		return nil, fmt.Errorf("%w: CustomerStanding - tracker error: %v", ErrInternal, err)
	}

	return &models.CustomerStandingResponse{
		BusinessID:  businessID,
		Phone:       customerPhone,
		NoShowCount: count,
		Blocked:     blocked,
	}, nil
}

// UnblockCustomer снимает блокировку и обнуляет счетчик неявок телефона в салоне
func (s *Service) UnblockCustomer(ctx context.Context, businessID int64, rawPhone string) error {
	customerPhone, err := s.normalizeForBusiness(ctx, "UnblockCustomer", businessID, rawPhone)
	if err != nil {
		return err
	}

	if err := s.noShowTracker.Unblock(ctx, businessID, customerPhone); err != nil {
		s.logger.Error("UnblockCustomer: tracker error: %v", err)
		return fmt.Errorf("%w: UnblockCustomer - tracker error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockCustomer: business=%d phone unblocked", businessID)
	return nil
}

func (s *Service) transition(
	ctx context.Context,
	op string,
	load func(txCtx context.Context) (*domain.Appointment, error),
	next domain.AppointmentStatus,
) (*models.StatusChangeResponse, error) {
	var appointment *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := load(txCtx)
		if err != nil {
			return s.mapRepoError(op, err)
		}

		if !a.CanTransitionTo(next) {
			s.logger.Warn("%s: appointment id=%d cannot move from %s to %s", op, a.ID, a.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, a.ID, next); err != nil {
			return s.mapRepoError(op, err)
		}

		a.Status = next
		appointment = a
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("%s: transaction failed: %v", op, err)
		return nil, fmt.Errorf("%w: %s - transaction failed: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: appointment id=%d is now %s", op, appointment.ID, next)

	resp := &models.StatusChangeResponse{Appointment: *models.FromDomainAppointment(appointment)}
	if next == domain.StatusNoShow {
		resp.NoShowCount, resp.CustomerBlocked = s.recordNoShow(ctx, appointment)
	}

	return resp, nil
}

// recordNoShow учитывает неявку в трекере. Статус записи к этому моменту уже сохранен,
// поэтому ошибки трекера только логируются.
func (s *Service) recordNoShow(ctx context.Context, a *domain.Appointment) (int64, bool) {
	business, err := s.businessRepo.GetByID(ctx, a.BusinessID)
	if err != nil {
		s.logger.Error("RecordNoShow: failed to get business id=%d: %v", a.BusinessID, err)
		return 0, false
	}

	if !business.TracksNoShows() {
		return 0, false
	}

	count, blocked, err := s.noShowTracker.RecordNoShow(ctx, business.ID, a.CustomerPhone, business.NoShowBlockLimit)
	if err != nil {
		s.logger.Error("RecordNoShow: tracker error for appointment id=%d: %v", a.ID, err)
		return 0, false
	}

	if blocked {
		s.logger.Warn("RecordNoShow: customer of appointment id=%d blocked in business=%d after %d no-shows",
			a.ID, business.ID, count)
	}

	return count, blocked
}

func (s *Service) normalizeForBusiness(ctx context.Context, op string, businessID int64, rawPhone string) (string, error) {
	if businessID <= 0 {
		return "", fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if !phone.IsValid(rawPhone, s.phoneRegion) {
		return "", fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%d not found", op, businessID)
			return "", ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%d: %v", op, businessID, err)
		return "", fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return phone.Normalize(rawPhone, s.phoneRegion), nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment not found", op)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
