package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *ScheduleGormRepository) ListWindows(
	ctx context.Context,
	offset int,
	limit int,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *ScheduleGormRepository) ListWindowsByWeekday(
	ctx context.Context,
	weekday string,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("LOWER(weekday) = ? AND active = true", strings.ToLower(weekday)).
		Order("id ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *ScheduleGormRepository) DeleteWindow(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).Delete(&models.AvailabilityWindow{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Booking settings (singleton, wholesale replace)
// --------------------------------------------------

func (r *ScheduleGormRepository) SaveSettings(
	ctx context.Context,
	s *models.BookingSettings,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("1 = 1").
			Delete(&models.BookingSettings{}).Error; err != nil {
			return err
		}
		return tx.Create(s).Error
	})
}

func (r *ScheduleGormRepository) GetSettings(
	ctx context.Context,
) (*models.BookingSettings, error) {

	var settings models.BookingSettings
	err := r.db.WithContext(ctx).
		Order("id ASC").
		First(&settings).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

// ReserveBooking holds a FOR UPDATE lock over the date's occupying rows
// while it checks for overlap and inserts, so two concurrent reservations
// for intersecting ranges serialize and exactly one wins. The gist
// exclusion constraint on bookings backstops the same invariant at commit.
func (r *ScheduleGormRepository) ReserveBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
				b.Date, domain.OccupyingStatuses, b.EndMinute, b.StartMinute,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(b).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}

	return err
}

func (r *ScheduleGormRepository) HasOverlap(
	ctx context.Context,
	date string,
	start int,
	end int,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
			date, domain.OccupyingStatuses, end, start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ScheduleGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	return &b, nil
}

func (r *ScheduleGormRepository) ListBookingsByDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date = ? AND status IN ?", date, domain.OccupyingStatuses).
		Order("start_minute ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *ScheduleGormRepository) ListBookingsByUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("date ASC, start_minute ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *ScheduleGormRepository) CancelBooking(
	ctx context.Context,
	id uint,
	userID uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// absent or not owned: same answer on purpose
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	b.Status = string(domain.StatusCancelled)
	if err := r.db.WithContext(ctx).Save(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *ScheduleGormRepository) ReplaceBooking(
	ctx context.Context,
	id uint,
	date string,
	start int,
	end int,
	status string,
) (*models.Booking, error) {

	var updated models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var b models.Booking
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("booking_not_found")
			}
			return err
		}

		if domain.Status(status).Occupies() {
			var count int64
			if err := tx.
				Model(&models.Booking{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"id <> ? AND date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
					id, date, domain.OccupyingStatuses, end, start,
				).
				Count(&count).Error; err != nil {
				return err
			}

			if count > 0 {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		b.Date = date
		b.StartMinute = start
		b.EndMinute = end
		b.Status = status

		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		updated = b
		return nil
	})

	if httperr.IsExclusionConflict(err) {
		return nil, httperr.ErrBusiness("time_conflict")
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *ScheduleGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
