package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	createBooking "github.com/m04kA/SMC-BarberService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID    int64    `json:"providerId"`
	Date          string   `json:"date"`     // "2026-10-15"
	SlotTime      string   `json:"slotTime"` // "10:00"
	Mode          string   `json:"mode,omitempty"`
	ServiceIDs    []string `json:"serviceIds"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
}

// ServiceResponse услуга в записи
type ServiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration int    `json:"duration"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64             `json:"id"`
	ReferenceCode string            `json:"referenceCode"`
	ProviderID    int64             `json:"providerId"`
	BusinessID    int64             `json:"businessId"`
	Date          string            `json:"date"`
	SlotTime      string            `json:"slotTime"`
	EndTime       string            `json:"endTime"`
	TotalDuration int               `json:"totalDuration"`
	TotalPrice    string            `json:"totalPrice"`
	Mode          string            `json:"mode"`
	Status        string            `json:"status"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Services      []ServiceResponse `json:"services"`
	CreatedAt     string            `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Форматы даты и времени проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ProviderID:    r.ProviderID,
		Date:          types.Date(r.Date),
		SlotTime:      types.TimeString(r.SlotTime),
		Mode:          domain.BookingMode(r.Mode),
		ServiceIDs:    r.ServiceIDs,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	services := make([]ServiceResponse, 0, len(resp.Services))
	for _, s := range resp.Services {
		services = append(services, ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price.StringFixed(2),
			Duration: s.DurationMinutes,
		})
	}

	return &AppointmentResponse{
		ID:            resp.ID,
		ReferenceCode: resp.ReferenceCode.String(),
		ProviderID:    resp.ProviderID,
		BusinessID:    resp.BusinessID,
		Date:          resp.Date.String(),
		SlotTime:      resp.SlotTime.String(),
		EndTime:       resp.EndTime.String(),
		TotalDuration: resp.TotalDuration,
		TotalPrice:    resp.TotalPrice.StringFixed(2),
		Mode:          string(resp.Mode),
		Status:        string(resp.Status),
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		Services:      services,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
