package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings"
)

const (
	msgInvalidReferenceCode = "некорректный код записи"
	msgNotFound             = "запись не найдена"
	msgCannotCancel         = "запись не может быть отменена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/ref/{referenceCode}/cancel
// Отмена клиентом по коду из подтверждения записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code, err := uuid.Parse(mux.Vars(r)["referenceCode"])
	if err != nil {
		h.logger.Warn("POST /appointments/ref/{code}/cancel - Invalid reference code: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReferenceCode)
		return
	}

	result, err := h.service.CancelByReferenceCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/ref/{code}/cancel - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/ref/{code}/cancel - Cannot cancel: code=%s: %v", code, err)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /appointments/ref/{code}/cancel - Failed to cancel: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/ref/{code}/cancel - Appointment cancelled: appointment_id=%d", result.Appointment.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
