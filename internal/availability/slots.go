package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// SlotPolicy switches that live outside the provider snapshot
type SlotPolicy struct {
	// WalkinBufferEnabled business-wide switch; the provider must enable the buffer as well
	WalkinBufferEnabled bool
}

// interval busy range [start, end) in minutes since midnight
type interval struct {
	start int
	end   int
}

// WorkWindow returns the provider's working window in minutes.
// ok is false when start >= end: a valid configuration that simply yields no slots.
func WorkWindow(p *domain.Provider) (start, end int, ok bool, err error) {
	start, err = p.WorkStartTime.Minutes()
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: workStartTime: %v", ErrInvalidInput, err)
	}
	end, err = p.WorkEndTime.Minutes()
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: workEndTime: %v", ErrInvalidInput, err)
	}
	return start, end, start < end, nil
}

// ComputeSlots lays the provider's working window for date onto the 15-minute grid and flags
// every cell as booked, past or walk-in only.
//
// The caller must have confirmed via ResolveDayMode that the provider works on date, and
// passes only this provider's appointments for this date. Only booked appointments occupy
// the grid. The wall clock of date is interpreted in now's location. The result depends only
// on the arguments.
func ComputeSlots(
	p *domain.Provider,
	date types.Date,
	appointments []domain.Appointment,
	now time.Time,
	policy SlotPolicy,
) ([]domain.Slot, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}

	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, end, ok, err := WorkWindow(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Slot{}, nil
	}

	busy, err := busyIntervals(p, date, appointments)
	if err != nil {
		return nil, err
	}

	walkinBuffer := time.Duration(0)
	if policy.WalkinBufferEnabled && p.EnableWalkinBuffer && p.WalkinBufferMinutes > 0 {
		walkinBuffer = time.Duration(p.WalkinBufferMinutes) * time.Minute
	}

	slots := make([]domain.Slot, 0, (end-start)/domain.SlotResolutionMinutes+1)

	for cell := range Grid(start, end) {
		cellStartAt, err := date.At(cell.Start, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		isPast := cellStartAt.Before(now)

		slots = append(slots, domain.Slot{
			StartTime:    types.MinutesToTime(cell.Start),
			EndTime:      types.MinutesToTime(cell.End),
			IsBooked:     overlapsAny(cell, busy),
			IsPast:       isPast,
			IsWalkinOnly: walkinBuffer > 0 && !isPast && cellStartAt.Before(now.Add(walkinBuffer)),
		})
	}

	return slots, nil
}

// busyIntervals собирает занятые интервалы: записи и ручные блокировки на дату
func busyIntervals(p *domain.Provider, date types.Date, appointments []domain.Appointment) ([]interval, error) {
	busy := make([]interval, 0, len(appointments))

	for i := range appointments {
		a := &appointments[i]
		if !a.OccupiesTime() {
			continue
		}
		if !a.Date.IsZero() && a.Date != date {
			continue
		}

		start, err := a.SlotTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: appointment id=%d slotTime: %v", ErrInvalidInput, a.ID, err)
		}
		busy = append(busy, interval{start: start, end: start + a.TotalDuration})
	}

	for _, block := range p.BlockedSlotsOn(date) {
		start, err := block.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: blocked slot %s startTime: %v", ErrInvalidInput, block.ID, err)
		}
		busy = append(busy, interval{start: start, end: start + block.DurationMinutes})
	}

	return busy, nil
}

func overlapsAny(cell Cell, busy []interval) bool {
	for _, b := range busy {
		if cell.Overlaps(b.start, b.end) {
			return true
		}
	}
	return false
}
