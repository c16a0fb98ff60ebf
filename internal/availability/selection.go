package availability

import (
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// SelectionProblem why a requested start time cannot be booked on a computed grid
type SelectionProblem string

const (
	SelectionOK            SelectionProblem = ""
	SelectionOffGrid       SelectionProblem = "off_grid"
	SelectionBeyondWorkday SelectionProblem = "beyond_workday"
	SelectionUnavailable   SelectionProblem = "unavailable"
)

// CheckSlotSelection verifies that every grid cell covered by [start, start+duration) exists
// in slots and is selectable, and that the range ends no later than workEnd.
// slots must come from ComputeSlots for the same provider and date.
func CheckSlotSelection(slots []domain.Slot, start types.TimeString, durationMinutes int, workEnd types.TimeString) (SelectionProblem, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if durationMinutes <= 0 {
		return "", fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	endMinutes, err := workEnd.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: workEnd: %v", ErrInvalidInput, err)
	}

	byStart := make(map[int]*domain.Slot, len(slots))
	for i := range slots {
		m, err := slots[i].StartTime.Minutes()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		byStart[m] = &slots[i]
	}

	if _, ok := byStart[startMinutes]; !ok {
		return SelectionOffGrid, nil
	}

	for cell := range Grid(startMinutes, startMinutes+durationMinutes) {
		slot, ok := byStart[cell.Start]
		if !ok {
			return SelectionBeyondWorkday, nil
		}
		if !slot.IsSelectable() {
			return SelectionUnavailable, nil
		}
	}

	// последняя ячейка сетки может выходить за конец рабочего дня
	if startMinutes+durationMinutes > endMinutes {
		return SelectionBeyondWorkday, nil
	}

	return SelectionOK, nil
}
