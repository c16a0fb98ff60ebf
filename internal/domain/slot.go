package domain

import "github.com/m04kA/SMC-BarberService/pkg/types"

// SlotState display label of a grid cell
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
	SlotPast      SlotState = "past"
	SlotWalkin    SlotState = "walkin"
)

// Slot represents one 15-minute cell of a provider's day.
// The flags are evaluated independently: a past cell is usually booked as well.
type Slot struct {
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsBooked     bool
	IsPast       bool
	IsWalkinOnly bool
}

// State returns the display label with precedence booked > past > walkin > available
func (s *Slot) State() SlotState {
	switch {
	case s.IsBooked:
		return SlotBooked
	case s.IsPast:
		return SlotPast
	case s.IsWalkinOnly:
		return SlotWalkin
	default:
		return SlotAvailable
	}
}

// IsSelectable returns true if the cell can be chosen for an online booking
func (s *Slot) IsSelectable() bool {
	return !s.IsBooked && !s.IsPast && !s.IsWalkinOnly
}
