package booking

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
)

type CancelBooking struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	cache *cache.SlotsCache,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute soft-cancels the booking if it belongs to userID. False covers
// both "not found" and "not yours" so existence is never leaked.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (bool, error) {

	b, err := uc.repo.CancelBooking(ctx, bookingID, userID)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}

	uc.cache.Invalidate(ctx, b.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return true, nil
}
