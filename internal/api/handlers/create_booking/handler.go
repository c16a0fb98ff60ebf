package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/availability"
	createBooking "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные записи"
	msgProviderNotFound    = "мастер не найден"
	msgProviderNotBookable = "мастер сейчас недоступен для записи"
	msgServiceNotFound     = "услуга не найдена у мастера"
	msgDateInPast          = "нельзя записаться на прошедшую дату"
	msgDayClosed           = "мастер не работает в выбранный день"
	msgCustomerBlocked     = "запись по этому номеру телефона заблокирована салоном"
	msgAlreadyBookedToday  = "у вас уже есть запись на сегодня"
	msgSlotUnavailable     = "выбранное время недоступно"
	msgSlotConflict        = "выбранное время только что заняли, обновите расписание"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: provider_id=%d: %v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /appointments - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrProviderNotBookable):
			h.logger.Warn("POST /appointments - Provider not bookable: provider_id=%d: %v", req.ProviderID, err)
			handlers.RespondUnprocessable(w, msgProviderNotBookable)

		case errors.Is(err, createBooking.ErrDayClosed):
			handlers.RespondUnprocessable(w, msgDayClosed)

		case errors.Is(err, createBooking.ErrCustomerBlocked):
			h.logger.Warn("POST /appointments - Customer blocked: provider_id=%d", req.ProviderID)
			handlers.RespondErrorCode(w, http.StatusForbidden, msgCustomerBlocked, string(availability.RejectCustomerBlocked))

		case errors.Is(err, createBooking.ErrAlreadyBookedToday):
			h.logger.Warn("POST /appointments - Already booked today: provider_id=%d", req.ProviderID)
			handlers.RespondErrorCode(w, http.StatusConflict, msgAlreadyBookedToday, string(availability.RejectAlreadyBookedToday))

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: provider_id=%d, date=%s, time=%s: %v",
				req.ProviderID, req.Date, req.SlotTime, err)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: provider_id=%d, date=%s, time=%s",
				req.ProviderID, req.Date, req.SlotTime)
			handlers.RespondErrorCode(w, http.StatusConflict, msgSlotConflict, "SLOT_CONFLICT")

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, provider_id=%d", result.ID, result.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
