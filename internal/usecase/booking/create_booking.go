package booking

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/timefmt"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uint

	Date      string // "YYYY-MM-DD"
	StartText string // "hh:mm am/pm"
	EndText   string // "hh:mm am/pm"
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	cache *cache.SlotsCache,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute admits a patient reservation. Validation order is fixed so
// callers always see the most specific failure first: slot duration, then
// occupancy, then window containment. The final reserve re-checks overlap
// atomically, so a race between two admissions still leaves exactly one
// winner.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	date, err := timefmt.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	start, err := timefmt.Parse12h(in.StartText)
	if err != nil {
		return nil, err
	}

	end, err := timefmt.Parse12h(in.EndText)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		// no settings means no bookable grid exists at all
		return nil, httperr.ErrBusiness("outside_window")
	}

	if end-start != settings.SlotDurationMin {
		return nil, httperr.ErrBusiness("wrong_duration")
	}

	taken, err := uc.repo.HasOverlap(ctx, date, start, end)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("already_booked")
	}

	weekday, err := timefmt.WeekdayName(date)
	if err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindowsByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	if !domain.ContainsRange(windows, start, end) {
		return nil, httperr.ErrBusiness("outside_window")
	}

	b := &models.Booking{
		UserID:      in.UserID,
		Date:        date,
		StartMinute: start,
		EndMinute:   end,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.ReserveBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
