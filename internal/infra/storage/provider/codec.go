package provider

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// scheduleColumns JSONB-представление расписания провайдера
type scheduleColumns struct {
	scheduleOverrides      []byte
	dailyLocationOverrides []byte
	timeOff                []byte
	blockedSlots           []byte
	services               []byte
}

func encodeSchedule(p *domain.Provider) (scheduleColumns, error) {
	var (
		cols scheduleColumns
		err  error
	)

	overrides := p.ScheduleOverrides
	if overrides == nil {
		overrides = map[types.Date]domain.ScheduleOverride{}
	}
	if cols.scheduleOverrides, err = json.Marshal(overrides); err != nil {
		return cols, fmt.Errorf("%w: schedule_overrides: %v", ErrEncodeSchedule, err)
	}

	locations := p.DailyLocationOverrides
	if locations == nil {
		locations = map[types.Date]domain.LocationOverride{}
	}
	if cols.dailyLocationOverrides, err = json.Marshal(locations); err != nil {
		return cols, fmt.Errorf("%w: daily_location_overrides: %v", ErrEncodeSchedule, err)
	}

	if cols.timeOff, err = json.Marshal(emptyIfNil(p.TimeOff)); err != nil {
		return cols, fmt.Errorf("%w: time_off: %v", ErrEncodeSchedule, err)
	}
	if cols.blockedSlots, err = json.Marshal(emptyIfNil(p.BlockedSlots)); err != nil {
		return cols, fmt.Errorf("%w: blocked_slots: %v", ErrEncodeSchedule, err)
	}
	if cols.services, err = json.Marshal(emptyIfNil(p.Services)); err != nil {
		return cols, fmt.Errorf("%w: services: %v", ErrEncodeSchedule, err)
	}

	return cols, nil
}

func (c scheduleColumns) decodeInto(p *domain.Provider) error {
	if err := decodeJSON(c.scheduleOverrides, &p.ScheduleOverrides); err != nil {
		return fmt.Errorf("schedule_overrides: %w", err)
	}
	if err := decodeJSON(c.dailyLocationOverrides, &p.DailyLocationOverrides); err != nil {
		return fmt.Errorf("daily_location_overrides: %w", err)
	}
	if err := decodeJSON(c.timeOff, &p.TimeOff); err != nil {
		return fmt.Errorf("time_off: %w", err)
	}
	if err := decodeJSON(c.blockedSlots, &p.BlockedSlots); err != nil {
		return fmt.Errorf("blocked_slots: %w", err)
	}
	if err := decodeJSON(c.services, &p.Services); err != nil {
		return fmt.Errorf("services: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, dst interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// weekdaysArray SMALLINT[] <-> []time.Weekday
func weekdaysArray(days []time.Weekday) pq.Int64Array {
	arr := make(pq.Int64Array, len(days))
	for i, d := range days {
		arr[i] = int64(d)
	}
	return arr
}

func weekdaysFromArray(arr pq.Int64Array) []time.Weekday {
	days := make([]time.Weekday, 0, len(arr))
	for _, v := range arr {
		if v < 0 || v > 6 {
			continue
		}
		days = append(days, time.Weekday(v))
	}
	return days
}
