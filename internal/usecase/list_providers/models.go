package list_providers

import (
	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса списка провайдеров
type Request struct {
	BusinessID   *int64 // Только провайдеры салона (опционально)
	OnlyBookable bool   // Скрыть недоступных для записи
}

// Response список провайдеров для выбора: сначала доступные для записи
type Response struct {
	Providers []Provider
}

// Provider провайдер в списке выбора
type Provider struct {
	ID             int64
	BusinessID     *int64
	BusinessName   string
	Name           string
	WorkStartTime  types.TimeString
	WorkEndTime    types.TimeString
	OnLocationMode domain.OnLocationMode
	Services       []domain.Service
	Bookable       bool
	Reason         availability.BookabilityReason // пусто, если Bookable
}
