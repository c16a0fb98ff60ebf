package availability

import (
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// ClosureReason why a provider does not work on a date
type ClosureReason string

const (
	ClosureNone       ClosureReason = ""
	ClosureNotWorking ClosureReason = "not_working"
	ClosureOnHoliday  ClosureReason = "on_holiday"
)

// DayMode is the outcome of resolving a provider's day
type DayMode struct {
	IsWorking      bool
	EffectiveMode  domain.BookingMode
	ShowModeChoice bool
	ClosureReason  ClosureReason
}

// ResolveDayMode decides whether the provider works on date and in which mode.
//
// Precedence, lowest to highest:
//  1. schedule override for the date, otherwise the weekly recurrence for the on-location policy
//  2. daily location override: fixes the mode and which weekday set governs openness
//  3. time off: the date is closed no matter what
//
// requestedMode only matters when the policy is optional; an empty value means in-shop.
// A malformed date is a contract violation and returns ErrInvalidInput.
func ResolveDayMode(p *domain.Provider, date types.Date, requestedMode domain.BookingMode) (DayMode, error) {
	if p == nil {
		return DayMode{}, fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}

	weekday, err := date.Weekday()
	if err != nil {
		return DayMode{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !requestedMode.IsValid() {
		requestedMode = domain.ModeInShop
	}

	policy := p.EffectiveOnLocationMode()
	inShopOpen := !p.IsRecurringClosed(weekday)
	onLocationOpen := p.IsOnLocationDay(weekday)

	var result DayMode

	if override, ok := p.ScheduleOverrideFor(date); ok {
		// Исключение на дату авторитетно, даже если совпадает с недельным расписанием
		result.IsWorking = !override.Closed
		result.EffectiveMode = modeForPolicy(policy, requestedMode)
		result.ShowModeChoice = policy == domain.OnLocationOptional
	} else {
		switch policy {
		case domain.OnLocationExclusive:
			result.IsWorking = onLocationOpen
			result.EffectiveMode = domain.ModeOnLocation
		case domain.OnLocationOptional:
			if requestedMode == domain.ModeInShop {
				result.IsWorking = inShopOpen
			} else {
				result.IsWorking = onLocationOpen
			}
			result.EffectiveMode = requestedMode
			result.ShowModeChoice = true
		default:
			result.IsWorking = inShopOpen
			result.EffectiveMode = domain.ModeInShop
		}
	}

	if override, ok := p.LocationOverrideFor(date); ok && override.IsValid() {
		switch override {
		case domain.LocationOnLocationExclusive:
			result.EffectiveMode = domain.ModeOnLocation
			result.IsWorking = onLocationOpen
		case domain.LocationInShopExclusive:
			result.EffectiveMode = domain.ModeInShop
			result.IsWorking = inShopOpen
		}
		result.ShowModeChoice = false
	} else if policy != domain.OnLocationOptional {
		result.ShowModeChoice = false
	}

	if p.IsOnVacation(date) {
		result.IsWorking = false
		result.ClosureReason = ClosureOnHoliday
		return result, nil
	}

	if !result.IsWorking {
		result.ClosureReason = ClosureNotWorking
	}

	return result, nil
}

// modeForPolicy exclusive and none pin the mode; optional keeps the caller's choice
func modeForPolicy(policy domain.OnLocationMode, requested domain.BookingMode) domain.BookingMode {
	switch policy {
	case domain.OnLocationExclusive:
		return domain.ModeOnLocation
	case domain.OnLocationOptional:
		return requested
	default:
		return domain.ModeInShop
	}
}
