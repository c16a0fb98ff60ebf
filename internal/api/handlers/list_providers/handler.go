package list_providers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	listProviders "github.com/m04kA/SMC-BarberService/internal/usecase/list_providers"
)

const (
	msgInvalidBusinessID   = "некорректный ID салона"
	msgInvalidOnlyBookable = "некорректное значение onlyBookable"
)

type Handler struct {
	useCase ListProvidersUseCase
	logger  Logger
}

func NewHandler(useCase ListProvidersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers
// Query params: businessId (optional), onlyBookable (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &listProviders.Request{}

	if raw := query.Get("businessId"); raw != "" {
		businessID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || businessID <= 0 {
			h.logger.Warn("GET /providers - Invalid business ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)
			return
		}
		req.BusinessID = &businessID
	}

	if raw := query.Get("onlyBookable"); raw != "" {
		onlyBookable, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /providers - Invalid onlyBookable: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidOnlyBookable)
			return
		}
		req.OnlyBookable = onlyBookable
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, listProviders.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidBusinessID)
			return
		}
		h.logger.Error("GET /providers - Failed to list providers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers - Providers listed: count=%d", len(result.Providers))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
