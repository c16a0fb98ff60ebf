package customer_standing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings"
)

const (
	msgInvalidBusinessID = "некорректный ID салона"
	msgInvalidPhone      = "некорректный ID салона или номер телефона"
	msgBusinessNotFound  = "салон не найден"
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

// Handle GET /api/v1/businesses/{businessId}/customers/{phone}/no-shows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, phone, ok := h.parseVars(w, r, "GET")
	if !ok {
		return
	}

	standing, err := h.service.CustomerStanding(r.Context(), businessID, phone)
	if err != nil {
		h.respondServiceError(w, "GET", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, standing)
}

// HandleUnblock DELETE /api/v1/businesses/{businessId}/customers/{phone}/no-shows
// Сбрасывает счетчик неявок и снимает блокировку
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	businessID, phone, ok := h.parseVars(w, r, "DELETE")
	if !ok {
		return
	}

	if err := h.service.UnblockCustomer(r.Context(), businessID, phone); err != nil {
		h.respondServiceError(w, "DELETE", businessID, err)
		return
	}

	h.logger.Info("DELETE /businesses/{id}/customers/{phone}/no-shows - Customer unblocked: business_id=%d", businessID)
	handlers.RespondNoContent(w)
}

func (h *Handler) parseVars(w http.ResponseWriter, r *http.Request, method string) (int64, string, bool) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /businesses/{id}/customers/{phone}/no-shows - Invalid business ID: %v", method, err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return 0, "", false
	}
	return businessID, vars["phone"], true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, method string, businessID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s /businesses/{id}/customers/{phone}/no-shows - Invalid phone: business_id=%d", method, businessID)
		handlers.RespondBadRequest(w, msgInvalidPhone)

	case errors.Is(err, bookings.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)

	default:
		h.logger.Error("%s /businesses/{id}/customers/{phone}/no-shows - Failed: business_id=%d, error=%v", method, businessID, err)
		handlers.RespondInternalError(w)
	}
}
