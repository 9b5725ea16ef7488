package booking

import (
	"context"
	"sort"
	"strings"
	"sync"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// fakeRepo is an in-memory Repository with the same atomicity contract as
// the GORM implementation: one mutex spans every check-and-mutate.
type fakeRepo struct {
	mu sync.Mutex

	nextWindowID  uint
	nextBookingID uint

	windows  []models.AvailabilityWindow
	settings *models.BookingSettings
	bookings map[uint]*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uint]*models.Booking)}
}

func (r *fakeRepo) CreateWindow(_ context.Context, w *models.AvailabilityWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextWindowID++
	w.ID = r.nextWindowID
	r.windows = append(r.windows, *w)
	return nil
}

func (r *fakeRepo) ListWindows(_ context.Context, offset, limit int) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offset >= len(r.windows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.windows) {
		end = len(r.windows)
	}
	return append([]models.AvailabilityWindow(nil), r.windows[offset:end]...), nil
}

func (r *fakeRepo) ListWindowsByWeekday(_ context.Context, weekday string) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.Active && strings.EqualFold(w.Weekday, weekday) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteWindow(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.windows {
		if w.ID == id {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) SaveSettings(_ context.Context, s *models.BookingSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = 1
	copied := *s
	r.settings = &copied
	return nil
}

func (r *fakeRepo) GetSettings(_ context.Context) (*models.BookingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settings == nil {
		return nil, nil
	}
	copied := *r.settings
	return &copied, nil
}

func (r *fakeRepo) overlapsLocked(excludeID uint, date string, start, end int) bool {
	for _, b := range r.bookings {
		if b.ID == excludeID || b.Date != date {
			continue
		}
		if !domain.Status(b.Status).Occupies() {
			continue
		}
		if domain.Overlaps(b.StartMinute, b.EndMinute, start, end) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) ReserveBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overlapsLocked(0, b.Date, b.StartMinute, b.EndMinute) {
		return httperr.ErrBusiness("time_conflict")
	}

	r.nextBookingID++
	b.ID = r.nextBookingID
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, date string, start, end int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.overlapsLocked(0, date, start, end), nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) ListBookingsByDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && domain.Status(b.Status).Occupies() {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinute < out[j].StartMinute })
	return out, nil
}

func (r *fakeRepo) ListBookingsByUser(_ context.Context, userID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartMinute < out[j].StartMinute
	})
	return out, nil
}

func (r *fakeRepo) CancelBooking(_ context.Context, id, userID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, nil
	}

	b.Status = string(domain.StatusCancelled)
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) ReplaceBooking(_ context.Context, id uint, date string, start, end int, status string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if domain.Status(status).Occupies() && r.overlapsLocked(id, date, start, end) {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	b.Date = date
	b.StartMinute = start
	b.EndMinute = end
	b.Status = status

	copied := *b
	return &copied, nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
