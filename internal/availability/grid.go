package availability

import (
	"iter"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Cell is a half-open [Start, End) interval in minutes since midnight.
type Cell struct {
	Start int
	End   int
}

// Overlaps reports whether [start, end) intersects the cell. Touching intervals do not overlap.
func (c Cell) Overlaps(start, end int) bool {
	return start < c.End && c.Start < end
}

// EnumerateSlots yields fixed-size cells starting at startMinutes while the cell start is
// before endMinutes. The sequence is lazy and can be ranged over any number of times.
// startMinutes >= endMinutes or a non-positive resolution yields nothing.
func EnumerateSlots(startMinutes, endMinutes, resolutionMinutes int) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if resolutionMinutes <= 0 || startMinutes >= endMinutes {
			return
		}
		for i := startMinutes; i < endMinutes; i += resolutionMinutes {
			if !yield(Cell{Start: i, End: i + resolutionMinutes}) {
				return
			}
		}
	}
}

// Grid is EnumerateSlots with the fixed booking resolution.
func Grid(startMinutes, endMinutes int) iter.Seq[Cell] {
	return EnumerateSlots(startMinutes, endMinutes, domain.SlotResolutionMinutes)
}
