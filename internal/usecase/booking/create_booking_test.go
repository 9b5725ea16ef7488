package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

func mondayRepo(t *testing.T) *fakeRepo {
	t.Helper()

	repo := newFakeRepo()
	addWindow(t, repo, "Monday", 540, 600) // 09:00..10:00
	setDuration(t, repo, 30)
	return repo
}

func TestCreateBookingSucceedsInsideWindow(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "9:00 am",
		EndText:   "9:30 am",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if b.ID == 0 {
		t.Fatal("booking was not persisted")
	}
	if b.StartMinute != 540 || b.EndMinute != 570 {
		t.Fatalf("booking range = %d..%d, want 540..570", b.StartMinute, b.EndMinute)
	}
	if b.Status != "booked" {
		t.Fatalf("initial status = %q, want booked", b.Status)
	}
}

func TestCreateBookingOffGridInsideWindow(t *testing.T) {
	// 09:15..09:45 is duration-correct and fully contained, so it is
	// admitted even though it does not sit on the candidate grid.
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "9:15 am",
		EndText:   "9:45 am",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.StartMinute != 555 || b.EndMinute != 585 {
		t.Fatalf("booking range = %d..%d, want 555..585", b.StartMinute, b.EndMinute)
	}
}

func TestCreateBookingWithoutSettings(t *testing.T) {
	repo := newFakeRepo()
	addWindow(t, repo, "Monday", 540, 600)

	_, err := NewCreateBooking(repo, nil, nil).Execute(context.Background(), CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "9:00 am",
		EndText:   "9:30 am",
	})
	if !httperr.IsBusiness(err, "outside_window") {
		t.Fatalf("expected outside_window, got %v", err)
	}
}

func TestCreateBookingValidationOrder(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)
	ctx := context.Background()

	// Wrong duration wins even when the range is also outside every window.
	_, err := uc.Execute(ctx, CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "11:00 am",
		EndText:   "12:00 pm",
	})
	if !httperr.IsBusiness(err, "wrong_duration") {
		t.Fatalf("expected wrong_duration, got %v", err)
	}

	// Occupancy is reported before containment: seed a booking outside the
	// window, then request a conflicting range that is also outside it.
	if err := repo.ReserveBooking(ctx, &models.Booking{
		UserID:      2,
		Date:        monday,
		StartMinute: 660,
		EndMinute:   690,
		Status:      "booked",
	}); err != nil {
		t.Fatalf("ReserveBooking: %v", err)
	}

	_, err = uc.Execute(ctx, CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "11:00 am",
		EndText:   "11:30 am",
	})
	if !httperr.IsBusiness(err, "already_booked") {
		t.Fatalf("expected already_booked, got %v", err)
	}

	// Free and duration-correct but not contained.
	_, err = uc.Execute(ctx, CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "10:00 am",
		EndText:   "10:30 am",
	})
	if !httperr.IsBusiness(err, "outside_window") {
		t.Fatalf("expected outside_window, got %v", err)
	}
}

func TestCreateBookingRejectsOverlapWithOccupied(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "9:00 am",
		EndText:   "9:30 am",
	}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// Partial overlap, not just identity.
	_, err := uc.Execute(ctx, CreateBookingInput{
		UserID:    2,
		Date:      monday,
		StartText: "9:15 am",
		EndText:   "9:45 am",
	})
	if !httperr.IsBusiness(err, "already_booked") {
		t.Fatalf("expected already_booked, got %v", err)
	}
}

func TestCreateBookingSameSlotOtherDate(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, CreateBookingInput{
		UserID:    1,
		Date:      monday,
		StartText: "9:00 am",
		EndText:   "9:30 am",
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// 2026-01-12 is the following Monday.
	if _, err := uc.Execute(ctx, CreateBookingInput{
		UserID:    2,
		Date:      "2026-01-12",
		StartText: "9:00 am",
		EndText:   "9:30 am",
	}); err != nil {
		t.Fatalf("same slot on another date must succeed: %v", err)
	}
}

func TestCreateBookingRejectsMalformedInput(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateBookingInput{
		UserID: 1, Date: "bad", StartText: "9:00 am", EndText: "9:30 am",
	})
	if !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("expected invalid_date, got %v", err)
	}

	_, err = uc.Execute(ctx, CreateBookingInput{
		UserID: 1, Date: monday, StartText: "25:00 am", EndText: "9:30 am",
	})
	if !httperr.IsBusiness(err, "invalid_time_format") {
		t.Fatalf("expected invalid_time_format, got %v", err)
	}
}

func TestConcurrentReservationsSameSlotSingleWinner(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)

	const racers = 16

	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateBookingInput{
				UserID:    uint(i + 1),
				Date:      monday,
				StartText: "9:00 am",
				EndText:   "9:30 am",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		switch {
		case err == nil:
			winners++
		case httperr.IsBusiness(err, "already_booked"),
			httperr.IsBusiness(err, "time_conflict"):
			// expected for losers
		default:
			t.Fatalf("racer %d: unexpected error %v", i, err)
		}
	}

	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}

	stored, err := repo.ListBookingsByDate(context.Background(), monday)
	if err != nil {
		t.Fatalf("ListBookingsByDate: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one stored booking, got %d", len(stored))
	}
}

func TestConcurrentReservationsDisjointSlotsBothWin(t *testing.T) {
	repo := mondayRepo(t)
	uc := NewCreateBooking(repo, nil, nil)

	var wg sync.WaitGroup
	var errA, errB error

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = uc.Execute(context.Background(), CreateBookingInput{
			UserID: 1, Date: monday, StartText: "9:00 am", EndText: "9:30 am",
		})
	}()
	go func() {
		defer wg.Done()
		_, errB = uc.Execute(context.Background(), CreateBookingInput{
			UserID: 2, Date: monday, StartText: "9:30 am", EndText: "10:00 am",
		})
	}()
	wg.Wait()

	if errA != nil || errB != nil {
		t.Fatalf("disjoint reservations must both succeed: %v / %v", errA, errB)
	}
}
