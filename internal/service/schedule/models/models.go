package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модели

// WorkSettingsRequest недельное расписание провайдера, политика выезда и буфер
type WorkSettingsRequest struct {
	WorkStartTime       string `json:"workStartTime" validate:"required,hhmm"`
	WorkEndTime         string `json:"workEndTime" validate:"required,hhmm"`
	RecurringClosedDays []int  `json:"recurringClosedDays" validate:"max=7,unique,dive,min=0,max=6"`
	OnLocationMode      string `json:"onLocationMode" validate:"omitempty,oneof=none optional exclusive"`
	OnLocationDays      []int  `json:"onLocationDays" validate:"max=7,unique,dive,min=0,max=6"`
	EnableWalkinBuffer  bool   `json:"enableWalkinBuffer"`
	WalkinBufferMinutes int    `json:"walkinBufferMinutes" validate:"min=0,max=240"`
}

// CreateProviderRequest запрос на создание провайдера
type CreateProviderRequest struct {
	BusinessID   *int64              `json:"businessId,omitempty" validate:"omitempty,min=1"`
	Name         string              `json:"name" validate:"required,max=100"`
	WorkSettings WorkSettingsRequest `json:"workSettings" validate:"required"`
	Services     []ServiceRequest    `json:"services" validate:"max=50,unique=ID,dive"`
}

// ScheduleOverrideRequest открыть или закрыть конкретную дату
type ScheduleOverrideRequest struct {
	Date   string `json:"date" validate:"required,isodate"`
	Closed bool   `json:"closed"`
}

// LocationOverrideRequest зафиксировать режим на дату. Пустой Mode снимает переопределение.
type LocationOverrideRequest struct {
	Date string `json:"date" validate:"required,isodate"`
	Mode string `json:"mode" validate:"omitempty,oneof=in-shop-exclusive on-location-exclusive"`
}

// TimeOffRequest отпуск, обе даты включительно
type TimeOffRequest struct {
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
}

// BlockedSlotRequest ручная блокировка времени
type BlockedSlotRequest struct {
	Date      string `json:"date" validate:"required,isodate"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	Duration  int    `json:"duration" validate:"required,min=1,max=1440"`
}

// ServiceRequest услуга провайдера
type ServiceRequest struct {
	ID       string `json:"id" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=100"`
	Price    string `json:"price" validate:"required,price"`
	Duration int    `json:"duration" validate:"min=5,max=480"`
}

// ServicesRequest полный список услуг провайдера
type ServicesRequest struct {
	Services []ServiceRequest `json:"services" validate:"max=50,unique=ID,dive"`
}

// Response модели

// ServiceResponse услуга провайдера
type ServiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration int    `json:"duration"`
}

// TimeOffResponse отпуск
type TimeOffResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// BlockedSlotResponse ручная блокировка
type BlockedSlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
}

// ScheduleResponse расписание провайдера целиком
type ScheduleResponse struct {
	ID                     int64                 `json:"id"`
	BusinessID             *int64                `json:"businessId,omitempty"`
	Name                   string                `json:"name"`
	WorkStartTime          string                `json:"workStartTime"`
	WorkEndTime            string                `json:"workEndTime"`
	RecurringClosedDays    []int                 `json:"recurringClosedDays"`
	OnLocationMode         string                `json:"onLocationMode"`
	OnLocationDays         []int                 `json:"onLocationDays"`
	ScheduleOverrides      map[string]bool       `json:"scheduleOverrides"` // дата -> closed
	DailyLocationOverrides map[string]string     `json:"dailyLocationOverrides"`
	TimeOff                []TimeOffResponse     `json:"timeOff"`
	BlockedSlots           []BlockedSlotResponse `json:"blockedSlots"`
	Services               []ServiceResponse     `json:"services"`
	EnableWalkinBuffer     bool                  `json:"enableWalkinBuffer"`
	WalkinBufferMinutes    int                   `json:"walkinBufferMinutes"`
	UpdatedAt              time.Time             `json:"updatedAt"`
}

// Конвертеры

// ToWeekdays конвертирует номера дней (0=воскресенье) в time.Weekday
func ToWeekdays(days []int) []time.Weekday {
	result := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		result = append(result, time.Weekday(d))
	}
	return result
}

func fromWeekdays(days []time.Weekday) []int {
	result := make([]int, 0, len(days))
	for _, d := range days {
		result = append(result, int(d))
	}
	sort.Ints(result)
	return result
}

// FromDomainProvider конвертирует domain.Provider в ScheduleResponse
func FromDomainProvider(p *domain.Provider) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:                     p.ID,
		BusinessID:             p.BusinessID,
		Name:                   p.Name,
		WorkStartTime:          p.WorkStartTime.String(),
		WorkEndTime:            p.WorkEndTime.String(),
		RecurringClosedDays:    fromWeekdays(p.RecurringClosedDays),
		OnLocationMode:         string(p.EffectiveOnLocationMode()),
		OnLocationDays:         fromWeekdays(p.OnLocationDays),
		ScheduleOverrides:      make(map[string]bool, len(p.ScheduleOverrides)),
		DailyLocationOverrides: make(map[string]string, len(p.DailyLocationOverrides)),
		TimeOff:                make([]TimeOffResponse, 0, len(p.TimeOff)),
		BlockedSlots:           make([]BlockedSlotResponse, 0, len(p.BlockedSlots)),
		Services:               make([]ServiceResponse, 0, len(p.Services)),
		EnableWalkinBuffer:     p.EnableWalkinBuffer,
		WalkinBufferMinutes:    p.WalkinBufferMinutes,
		UpdatedAt:              p.UpdatedAt,
	}

	for date, o := range p.ScheduleOverrides {
		resp.ScheduleOverrides[date.String()] = o.Closed
	}
	for date, mode := range p.DailyLocationOverrides {
		resp.DailyLocationOverrides[date.String()] = string(mode)
	}
	for _, t := range p.TimeOff {
		resp.TimeOff = append(resp.TimeOff, TimeOffResponse{StartDate: t.StartDate.String(), EndDate: t.EndDate.String()})
	}
	for _, b := range p.BlockedSlots {
		resp.BlockedSlots = append(resp.BlockedSlots, BlockedSlotResponse{
			ID:        b.ID,
			Date:      b.Date.String(),
			StartTime: b.StartTime.String(),
			Duration:  b.DurationMinutes,
		})
	}
	for _, s := range p.Services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price.StringFixed(2),
			Duration: s.DurationMinutes,
		})
	}

	return resp
}
