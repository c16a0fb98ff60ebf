package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListByPhoneRequest запрос на получение записей клиента по телефону
type ListByPhoneRequest struct {
	Phone           string      `json:"phone"`
	BusinessID      *int64      `json:"businessId,omitempty"`      // Фильтр по салону (опционально)
	StartDate       *types.Date `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *types.Date `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string     `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool        `json:"includeInactive,omitempty"` // Включить отмененные записи
}

// Response модели

// ServiceResponse услуга в записи
type ServiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration int    `json:"duration"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64             `json:"id"`
	ReferenceCode string            `json:"referenceCode"`
	ProviderID    int64             `json:"providerId"`
	BusinessID    int64             `json:"businessId"`
	Date          string            `json:"date"`     // "2026-10-15"
	SlotTime      string            `json:"slotTime"` // "10:00"
	EndTime       string            `json:"endTime"`
	TotalDuration int               `json:"totalDuration"`
	TotalPrice    string            `json:"totalPrice"`
	Mode          string            `json:"mode"`
	Status        string            `json:"status"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Services      []ServiceResponse `json:"services"`
	CancelledAt   *time.Time        `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// StatusChangeResponse ответ на смену статуса.
// NoShowCount и CustomerBlocked заполняются только при отметке неявки.
type StatusChangeResponse struct {
	Appointment     AppointmentResponse `json:"appointment"`
	NoShowCount     int64               `json:"noShowCount,omitempty"`
	CustomerBlocked bool                `json:"customerBlocked,omitempty"`
}

// CustomerStandingResponse неявки клиента в салоне
type CustomerStandingResponse struct {
	BusinessID  int64  `json:"businessId"`
	Phone       string `json:"phone"`
	NoShowCount int64  `json:"noShowCount"`
	Blocked     bool   `json:"blocked"`
}

// Конвертеры

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	endTime, err := a.SlotTime.AddMinutes(a.TotalDuration)
	if err != nil {
		endTime = ""
	}

	services := make([]ServiceResponse, 0, len(a.Services))
	for _, s := range a.Services {
		services = append(services, ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price.StringFixed(2),
			Duration: s.DurationMinutes,
		})
	}

	return &AppointmentResponse{
		ID:            a.ID,
		ReferenceCode: a.ReferenceCode.String(),
		ProviderID:    a.ProviderID,
		BusinessID:    a.BusinessID,
		Date:          a.Date.String(),
		SlotTime:      a.SlotTime.String(),
		EndTime:       endTime.String(),
		TotalDuration: a.TotalDuration,
		TotalPrice:    a.TotalPrice.StringFixed(2),
		Mode:          string(a.Mode),
		Status:        string(a.Status),
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		Services:      services,
		CancelledAt:   a.CancelledAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(items []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(items)),
		Total:        len(items),
	}
	for _, a := range items {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
