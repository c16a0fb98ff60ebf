package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	getDaySchedule "github.com/m04kA/SMC-BarberService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidProviderID   = "некорректный ID мастера"
	msgMissingDate         = "дата обязательна"
	msgInvalidInput        = "некорректная дата или режим, ожидается YYYY-MM-DD и in-shop|on-location"
	msgProviderNotFound    = "мастер не найден"
	msgProviderNotBookable = "мастер сейчас недоступен для записи"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/day-schedule
// Query params: date (required, YYYY-MM-DD), mode (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/day-schedule - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /providers/{id}/day-schedule - Missing date: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(providerID, date, query.Get("mode")))
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/day-schedule - Invalid input: provider_id=%d: %v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getDaySchedule.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/day-schedule - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getDaySchedule.ErrProviderNotBookable):
			h.logger.Warn("GET /providers/{id}/day-schedule - Provider not bookable: provider_id=%d: %v", providerID, err)
			handlers.RespondUnprocessable(w, msgProviderNotBookable)

		default:
			h.logger.Error("GET /providers/{id}/day-schedule - Failed to get schedule: provider_id=%d, date=%s, error=%v",
				providerID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/day-schedule - Schedule retrieved: provider_id=%d, date=%s, working=%t, slots_count=%d",
		providerID, date, result.IsWorking, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
