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

type AdminReplaceBookingInput struct {
	BookingID uint

	Date      string // "YYYY-MM-DD"
	StartText string // "hh:mm am/pm"
	EndText   string // "hh:mm am/pm"
	Status    string
}

type AdminReplaceBooking struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewAdminReplaceBooking(
	repo domain.Repository,
	cache *cache.SlotsCache,
	audit *audit.Dispatcher,
) *AdminReplaceBooking {
	return &AdminReplaceBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute rewrites a booking's date, times and status on behalf of the
// admin, bypassing ownership but never the no-overlap invariant: moving
// into an occupied range fails time_conflict and leaves the stored row
// untouched.
func (uc *AdminReplaceBooking) Execute(
	ctx context.Context,
	adminID uint,
	in AdminReplaceBookingInput,
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

	if start >= end {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	if !domain.IsKnownStatus(in.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	// fetched before the rewrite so the old date's cache can be dropped
	current, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	oldDate := current.Date

	updated, err := uc.repo.ReplaceBooking(ctx, in.BookingID, date, start, end, in.Status)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, oldDate, date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"date":   date,
			"start":  start,
			"end":    end,
			"status": in.Status,
		},
	})

	return updated, nil
}
