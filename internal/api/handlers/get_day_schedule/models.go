package get_day_schedule

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-BarberService/internal/usecase/get_day_schedule"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// SlotResponse ячейка сетки
type SlotResponse struct {
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	State        string `json:"state"`
	IsSelectable bool   `json:"isSelectable"`
}

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	ProviderID     int64          `json:"providerId"`
	Date           string         `json:"date"`
	IsWorking      bool           `json:"isWorking"`
	ClosureReason  string         `json:"closureReason,omitempty"`
	EffectiveMode  string         `json:"effectiveMode,omitempty"`
	ShowModeChoice bool           `json:"showModeChoice"`
	Slots          []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(providerID int64, date, mode string) *getDaySchedule.Request {
	return &getDaySchedule.Request{
		ProviderID: providerID,
		Date:       types.Date(date),
		Mode:       domain.BookingMode(mode),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:    s.StartTime.String(),
			EndTime:      s.EndTime.String(),
			State:        string(s.State),
			IsSelectable: s.IsSelectable,
		})
	}

	return &DayScheduleResponse{
		ProviderID:     resp.ProviderID,
		Date:           resp.Date.String(),
		IsWorking:      resp.IsWorking,
		ClosureReason:  string(resp.ClosureReason),
		EffectiveMode:  string(resp.EffectiveMode),
		ShowModeChoice: resp.ShowModeChoice,
		Slots:          slots,
	}
}
