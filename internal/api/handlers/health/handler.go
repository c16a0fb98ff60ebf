package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
)

const readyTimeout = 2 * time.Second

// Check проверка одной зависимости (БД, Redis)
type Check func(ctx context.Context) error

type Logger interface {
	Error(format string, v ...interface{})
}

// Response тело ответа health-проверок
type Response struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type Handler struct {
	checks map[string]Check
	logger Logger
}

func NewHandler(checks map[string]Check, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Health GET /healthz - процесс жив
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}

// Ready GET /readyz - все зависимости отвечают
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	resp := Response{Status: "ready", Dependencies: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Error("GET /readyz - %s check failed: %v", name, err)
			resp.Dependencies[name] = "error"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}

	handlers.RespondJSON(w, status, resp)
}
