package schedule

import (
	"reflect"
	"testing"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

func window(weekday string, start, end int) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   end,
		Active:      true,
	}
}

func TestGenerateSlotsCutsWindowIntoConsecutiveSlots(t *testing.T) {
	windows := []models.AvailabilityWindow{window("Monday", 540, 600)}

	got := GenerateSlots("2026-01-05", windows, 30)

	want := []Slot{
		{Date: "2026-01-05", Start: 540, End: 570},
		{Date: "2026-01-05", Start: 570, End: 600},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateSlots = %+v, want %+v", got, want)
	}
}

func TestGenerateSlotsGridAnchorsAtWindowStart(t *testing.T) {
	// 09:10..10:40 with 30-minute slots: grid starts at 550, not at a
	// round half hour.
	windows := []models.AvailabilityWindow{window("Monday", 550, 640)}

	got := GenerateSlots("2026-01-05", windows, 30)

	want := []Slot{
		{Date: "2026-01-05", Start: 550, End: 580},
		{Date: "2026-01-05", Start: 580, End: 610},
		{Date: "2026-01-05", Start: 610, End: 640},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateSlots = %+v, want %+v", got, want)
	}
}

func TestGenerateSlotsDropsTrailingRemainder(t *testing.T) {
	// 09:00..09:50 yields one 30-minute slot; the 20-minute tail is unusable.
	windows := []models.AvailabilityWindow{window("Monday", 540, 590)}

	got := GenerateSlots("2026-01-05", windows, 30)

	if len(got) != 1 || got[0].Start != 540 || got[0].End != 570 {
		t.Fatalf("GenerateSlots = %+v, want single slot 540..570", got)
	}
}

func TestGenerateSlotsWindowShorterThanDuration(t *testing.T) {
	windows := []models.AvailabilityWindow{window("Monday", 540, 560)}

	if got := GenerateSlots("2026-01-05", windows, 30); len(got) != 0 {
		t.Fatalf("expected no slots, got %+v", got)
	}
}

func TestGenerateSlotsOverlappingWindowsAreIndependent(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Monday", 540, 600),
		window("Monday", 570, 630),
	}

	got := GenerateSlots("2026-01-05", windows, 30)

	want := []Slot{
		{Date: "2026-01-05", Start: 540, End: 570},
		{Date: "2026-01-05", Start: 570, End: 600},
		{Date: "2026-01-05", Start: 570, End: 600},
		{Date: "2026-01-05", Start: 600, End: 630},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateSlots = %+v, want %+v", got, want)
	}
}

func TestGenerateSlotsNonPositiveDuration(t *testing.T) {
	windows := []models.AvailabilityWindow{window("Monday", 540, 600)}

	if got := GenerateSlots("2026-01-05", windows, 0); got != nil {
		t.Fatalf("duration 0: expected nil, got %+v", got)
	}
	if got := GenerateSlots("2026-01-05", windows, -15); got != nil {
		t.Fatalf("negative duration: expected nil, got %+v", got)
	}
}

func TestGenerateSlotsInvariants(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Monday", 480, 720),
		window("Monday", 555, 731),
		window("Monday", 840, 1020),
	}

	for _, dur := range []int{15, 20, 30, 45, 60, 90} {
		for _, s := range GenerateSlots("2026-01-05", windows, dur) {
			if s.End-s.Start != dur {
				t.Fatalf("dur %d: slot %+v has wrong length", dur, s)
			}

			inside := false
			for _, w := range windows {
				if w.StartMinute <= s.Start && s.End <= w.EndMinute &&
					(s.Start-w.StartMinute)%dur == 0 {
					inside = true
					break
				}
			}
			if !inside {
				t.Fatalf("dur %d: slot %+v not aligned inside any window", dur, s)
			}
		}
	}
}

func TestContainsRange(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("Monday", 540, 600),
		window("Monday", 840, 1020),
	}

	cases := []struct {
		start, end int
		want       bool
	}{
		{540, 600, true},  // exact fit
		{555, 585, true},  // strict interior
		{540, 570, true},  // flush with window start
		{570, 600, true},  // flush with window end
		{530, 560, false}, // spills before
		{590, 620, false}, // spills after
		{600, 630, false}, // gap between windows
		{840, 1020, true}, // second window
	}

	for _, c := range cases {
		if got := ContainsRange(windows, c.start, c.end); got != c.want {
			t.Fatalf("ContainsRange(%d, %d) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}

func TestContainsRangeIgnoresInactiveWindows(t *testing.T) {
	w := window("Monday", 540, 600)
	w.Active = false

	if ContainsRange([]models.AvailabilityWindow{w}, 540, 570) {
		t.Fatal("inactive window must not contain anything")
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{540, 570, 570, 600, false}, // touching endpoints do not overlap
		{540, 570, 560, 590, true},
		{540, 600, 555, 585, true}, // containment
		{540, 570, 540, 570, true}, // identity
		{540, 570, 600, 630, false},
	}

	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v",
				c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
		}
	}
	if Overlaps(540, 570, 560, 590) != Overlaps(560, 590, 540, 570) {
		t.Fatal("Overlaps must be symmetric")
	}
}

func TestStatusOccupies(t *testing.T) {
	for _, s := range OccupyingStatuses {
		if !Status(s).Occupies() {
			t.Fatalf("status %q should occupy", s)
		}
	}
	if StatusCancelled.Occupies() {
		t.Fatal("cancelled must not occupy")
	}
	if Status("nonsense").Occupies() {
		t.Fatal("unknown status must not occupy")
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []string{"booked", "pending", "confirmed", "cancelled"} {
		if !IsKnownStatus(s) {
			t.Fatalf("%q should be known", s)
		}
	}
	for _, s := range []string{"", "Booked", "done"} {
		if IsKnownStatus(s) {
			t.Fatalf("%q should not be known", s)
		}
	}
}
