package schedule

import "github.com/clinicdesk/clinic-scheduler/internal/models"

// Slot is a concrete fixed-duration candidate reservation interval derived
// from an availability window for one date. Slots are computed, never
// persisted.
type Slot struct {
	Date  string `json:"date"`
	Start int    `json:"start_minute"`
	End   int    `json:"end_minute"`
}

// GenerateSlots walks each window in the order given and cuts it into
// consecutive durationMin-sized slots. The grid is anchored at each
// window's own start, not at midnight, so two windows on the same weekday
// produce independently aligned grids. Overlapping windows are processed
// independently and may yield overlapping candidates; subtracting booked
// ranges is the resolver's job, not ours. Pure and deterministic.
func GenerateSlots(date string, windows []models.AvailabilityWindow, durationMin int) []Slot {
	if durationMin <= 0 {
		return nil
	}

	var slots []Slot
	for _, w := range windows {
		for cursor := w.StartMinute; cursor+durationMin <= w.EndMinute; cursor += durationMin {
			slots = append(slots, Slot{
				Date:  date,
				Start: cursor,
				End:   cursor + durationMin,
			})
		}
	}

	return slots
}

// ContainsRange reports whether some active window fully contains the
// half-open range [start, end).
func ContainsRange(windows []models.AvailabilityWindow, start, end int) bool {
	for _, w := range windows {
		if !w.Active {
			continue
		}
		if w.StartMinute <= start && w.EndMinute >= end {
			return true
		}
	}
	return false
}

// Overlaps is the half-open interval intersection test used everywhere a
// booking is checked against another range.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
