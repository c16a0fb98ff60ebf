package manage_schedule

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

const (
	msgInvalidProviderID   = "некорректный ID мастера"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgValidationFailed    = "ошибка валидации"
	msgInvalidData         = "некорректные данные расписания"
	msgProviderNotFound    = "мастер не найден"
	msgBusinessNotFound    = "салон не найден"
	msgBlockedSlotNotFound = "блокировка не найдена"
	msgTimeOffNotFound     = "отпуск не найден"
)

type scheduleFunc func(ctx context.Context, providerID int64) (*models.ScheduleResponse, error)

// Handler управление расписанием мастера: рабочее окно, исключения, отпуска, блокировки и услуги
type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreateProvider POST /api/v1/providers
func (h *Handler) HandleCreateProvider(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProviderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateProvider(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /providers", 0, err)
		return
	}

	h.logger.Info("POST /providers - Provider created: provider_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/providers/{providerId}/schedule
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "GET /providers/{id}/schedule", h.service.GetSchedule)
}

// HandleUpdateWorkSettings PUT /api/v1/providers/{providerId}/schedule
func (h *Handler) HandleUpdateWorkSettings(w http.ResponseWriter, r *http.Request) {
	withBody(h, w, r, "PUT /providers/{id}/schedule", h.service.UpdateWorkSettings)
}

// HandleSetScheduleOverride PUT /api/v1/providers/{providerId}/schedule-overrides
func (h *Handler) HandleSetScheduleOverride(w http.ResponseWriter, r *http.Request) {
	withBody(h, w, r, "PUT /providers/{id}/schedule-overrides", h.service.SetScheduleOverride)
}

// HandleDeleteScheduleOverride DELETE /api/v1/providers/{providerId}/schedule-overrides/{date}
func (h *Handler) HandleDeleteScheduleOverride(w http.ResponseWriter, r *http.Request) {
	date := types.Date(mux.Vars(r)["date"])
	h.run(w, r, "DELETE /providers/{id}/schedule-overrides/{date}", func(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
		return h.service.DeleteScheduleOverride(ctx, providerID, date)
	})
}

// HandleSetLocationOverride PUT /api/v1/providers/{providerId}/location-overrides
func (h *Handler) HandleSetLocationOverride(w http.ResponseWriter, r *http.Request) {
	withBody(h, w, r, "PUT /providers/{id}/location-overrides", h.service.SetLocationOverride)
}

// HandleAddTimeOff POST /api/v1/providers/{providerId}/time-off
func (h *Handler) HandleAddTimeOff(w http.ResponseWriter, r *http.Request) {
	withBody(h, w, r, "POST /providers/{id}/time-off", h.service.AddTimeOff)
}

// HandleDeleteTimeOff DELETE /api/v1/providers/{providerId}/time-off/{startDate}
func (h *Handler) HandleDeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	startDate := types.Date(mux.Vars(r)["startDate"])
	h.run(w, r, "DELETE /providers/{id}/time-off/{startDate}", func(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
		return h.service.DeleteTimeOff(ctx, providerID, startDate)
	})
}

// HandleAddBlockedSlot POST /api/v1/providers/{providerId}/blocked-slots
func (h *Handler) HandleAddBlockedSlot(w http.ResponseWriter, r *http.Request) {
	withBody(h, w, r, "POST /providers/{id}/blocked-slots", h.service.AddBlockedSlot)
}

// HandleDeleteBlockedSlot DELETE /api/v1/providers/{providerId}/blocked-slots/{blockId}
func (h *Handler) HandleDeleteBlockedSlot(w http.ResponseWriter, r *http.Request) {
	blockID := mux.Vars(r)["blockId"]
	h.run(w, r, "DELETE /providers/{id}/blocked-slots/{blockId}", func(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
		return h.service.DeleteBlockedSlot(ctx, providerID, blockID)
	})
}

// HandleReplaceServices PUT /api/v1/providers/{providerId}/services
func (h *Handler) HandleReplaceServices(w http.ResponseWriter, r *http.Request) {
	withBody(h, w, r, "PUT /providers/{id}/services", h.service.ReplaceServices)
}

// withBody декодирует тело запроса и применяет изменение к расписанию мастера
func withBody[T any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	route string,
	apply func(ctx context.Context, providerID int64, req *T) (*models.ScheduleResponse, error),
) {
	h.run(w, r, route, func(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
		var req T
		if err := handlers.DecodeJSON(r, &req); err != nil {
			return nil, errors.Join(errBadBody, err)
		}
		return apply(ctx, providerID, &req)
	})
}

var errBadBody = errors.New("bad request body")

func (h *Handler) run(w http.ResponseWriter, r *http.Request, route string, fn scheduleFunc) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid provider ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := fn(r.Context(), providerID)
	if err != nil {
		h.respondError(w, route, providerID, err)
		return
	}

	h.logger.Info("%s - Done: provider_id=%d", route, providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, providerID int64, err error) {
	var validationErrs schedule.ValidationErrors

	switch {
	case errors.Is(err, errBadBody):
		h.logger.Warn("%s - Invalid request body: provider_id=%d: %v", route, providerID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.As(err, &validationErrs):
		h.logger.Warn("%s - Validation failed: provider_id=%d: %v", route, providerID, err)
		handlers.RespondValidationError(w, msgValidationFailed, validationErrs)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: provider_id=%d: %v", route, providerID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, schedule.ErrProviderNotFound):
		h.logger.Warn("%s - Provider not found: provider_id=%d", route, providerID)
		handlers.RespondNotFound(w, msgProviderNotFound)

	case errors.Is(err, schedule.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.Is(err, schedule.ErrBlockedSlotNotFound):
		handlers.RespondNotFound(w, msgBlockedSlotNotFound)

	case errors.Is(err, schedule.ErrTimeOffNotFound):
		handlers.RespondNotFound(w, msgTimeOffNotFound)

	default:
		h.logger.Error("%s - Failed: provider_id=%d, error=%v", route, providerID, err)
		handlers.RespondInternalError(w)
	}
}
