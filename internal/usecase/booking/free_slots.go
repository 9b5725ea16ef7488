package booking

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/cache"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/timefmt"
)

type FreeSlots struct {
	repo  domain.Repository
	cache *cache.SlotsCache
}

func NewFreeSlots(repo domain.Repository, cache *cache.SlotsCache) *FreeSlots {
	return &FreeSlots{
		repo:  repo,
		cache: cache,
	}
}

// Execute resolves the bookable slots for one date: candidate slots from
// the weekday's windows and the configured duration, minus every candidate
// whose range exactly matches an occupying booking. A partially
// overlapping booking does not hide a candidate; the grid is fixed, so
// bookings admitted through this API always align with it.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	dateStr string,
) ([]domain.Slot, error) {

	date, err := timefmt.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	if slots, ok := uc.cache.GetSlots(ctx, date); ok {
		return slots, nil
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		// not configured yet: a legitimate steady state, not an error
		return []domain.Slot{}, nil
	}

	weekday, err := timefmt.WeekdayName(date)
	if err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindowsByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	candidates := domain.GenerateSlots(date, windows, settings.SlotDurationMin)

	booked, err := uc.repo.ListBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	occupied := make(map[[2]int]struct{}, len(booked))
	for _, b := range booked {
		occupied[[2]int{b.StartMinute, b.EndMinute}] = struct{}{}
	}

	free := make([]domain.Slot, 0, len(candidates))
	for _, s := range candidates {
		if _, taken := occupied[[2]int{s.Start, s.End}]; taken {
			continue
		}
		free = append(free, s)
	}

	uc.cache.SetSlots(ctx, date, free)

	return free, nil
}
