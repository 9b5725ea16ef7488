package booking

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
)

type AdminDeleteBooking struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewAdminDeleteBooking(
	repo domain.Repository,
	cache *cache.SlotsCache,
	audit *audit.Dispatcher,
) *AdminDeleteBooking {
	return &AdminDeleteBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute hard-deletes a booking. Unlike patient cancel this is loud:
// false means the booking does not exist.
func (uc *AdminDeleteBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
) (bool, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if httperr.IsBusiness(err, "booking_not_found") {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	ok, err := uc.repo.DeleteBooking(ctx, bookingID)
	if err != nil || !ok {
		return false, err
	}

	uc.cache.Invalidate(ctx, b.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return true, nil
}
