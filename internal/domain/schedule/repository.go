package schedule

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Availability windows --------
	CreateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	ListWindows(
		ctx context.Context,
		offset int,
		limit int,
	) ([]models.AvailabilityWindow, error)

	// ListWindowsByWeekday returns only active windows, matched
	// case-insensitively, in insertion order.
	ListWindowsByWeekday(
		ctx context.Context,
		weekday string,
	) ([]models.AvailabilityWindow, error)

	DeleteWindow(
		ctx context.Context,
		id uint,
	) (bool, error)

	// -------- Booking settings (singleton) --------
	SaveSettings(
		ctx context.Context,
		s *models.BookingSettings,
	) error

	// GetSettings returns (nil, nil) when no settings are configured.
	GetSettings(
		ctx context.Context,
	) (*models.BookingSettings, error)

	// -------- Bookings --------

	// ReserveBooking inserts b only if no occupying booking on b.Date
	// overlaps [b.StartMinute, b.EndMinute). Check and insert run as one
	// atomic unit; on overlap it returns the time_conflict business error
	// and mutates nothing.
	ReserveBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// HasOverlap reports whether any occupying booking on date intersects
	// the half-open range. Read-committed view, used for pre-admission
	// messaging; ReserveBooking re-checks under the lock.
	HasOverlap(
		ctx context.Context,
		date string,
		start int,
		end int,
	) (bool, error)

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// ListBookingsByDate returns occupying bookings only, ordered by start.
	ListBookingsByDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	ListBookingsByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	// CancelBooking soft-cancels the booking only if it belongs to userID.
	// Returns (nil, nil) when the booking is absent or owned by someone
	// else; ownership mismatch is deliberately indistinguishable from
	// absence.
	CancelBooking(
		ctx context.Context,
		id uint,
		userID uint,
	) (*models.Booking, error)

	// ReplaceBooking rewrites date/time/status, re-validating the
	// no-overlap invariant against all other occupying bookings on the new
	// date before committing. booking_not_found if absent, time_conflict
	// if the move collides; the stored row is untouched on failure.
	ReplaceBooking(
		ctx context.Context,
		id uint,
		date string,
		start int,
		end int,
		status string,
	) (*models.Booking, error)

	DeleteBooking(
		ctx context.Context,
		id uint,
	) (bool, error)
}
