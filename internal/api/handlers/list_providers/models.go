package list_providers

import (
	listProviders "github.com/m04kA/SMC-BarberService/internal/usecase/list_providers"
)

// ServiceResponse услуга мастера
type ServiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration int    `json:"duration"`
}

// ProviderResponse мастер в списке выбора
type ProviderResponse struct {
	ID             int64             `json:"id"`
	BusinessID     *int64            `json:"businessId,omitempty"`
	BusinessName   string            `json:"businessName,omitempty"`
	Name           string            `json:"name"`
	WorkStartTime  string            `json:"workStartTime"`
	WorkEndTime    string            `json:"workEndTime"`
	OnLocationMode string            `json:"onLocationMode"`
	Services       []ServiceResponse `json:"services"`
	Bookable       bool              `json:"bookable"`
	Reason         string            `json:"reason,omitempty"`
}

// ProvidersResponse HTTP response model
type ProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Total     int                `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listProviders.Response) *ProvidersResponse {
	result := &ProvidersResponse{
		Providers: make([]ProviderResponse, 0, len(resp.Providers)),
		Total:     len(resp.Providers),
	}

	for _, p := range resp.Providers {
		services := make([]ServiceResponse, 0, len(p.Services))
		for _, s := range p.Services {
			services = append(services, ServiceResponse{
				ID:       s.ID,
				Name:     s.Name,
				Price:    s.Price.StringFixed(2),
				Duration: s.DurationMinutes,
			})
		}

		result.Providers = append(result.Providers, ProviderResponse{
			ID:             p.ID,
			BusinessID:     p.BusinessID,
			BusinessName:   p.BusinessName,
			Name:           p.Name,
			WorkStartTime:  p.WorkStartTime.String(),
			WorkEndTime:    p.WorkEndTime.String(),
			OnLocationMode: string(p.OnLocationMode),
			Services:       services,
			Bookable:       p.Bookable,
			Reason:         string(p.Reason),
		})
	}

	return result
}
