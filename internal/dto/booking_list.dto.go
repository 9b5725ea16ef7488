package dto

import (
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
	"github.com/clinicdesk/clinic-scheduler/internal/timefmt"
)

type UserOut struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
}

type BookingOut struct {
	ID        uint      `json:"id"`
	User      UserOut   `json:"user"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"` // "hh:mm AM/PM"
	EndTime   string    `json:"end_time"`   // "hh:mm AM/PM"
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type SlotOut struct {
	Start string `json:"start"` // "hh:mm AM/PM"
	End   string `json:"end"`   // "hh:mm AM/PM"
}

type AvailabilityOut struct {
	ID        uint      `json:"id"`
	Weekday   string    `json:"weekday"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM"
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserOut(u *models.User) UserOut {
	return UserOut{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Age:         u.Age,
		Gender:      u.Gender,
		Role:        u.Role,
	}
}

func NewBookingOut(b *models.Booking) BookingOut {
	return BookingOut{
		ID:        b.ID,
		User:      NewUserOut(&b.User),
		Date:      b.Date,
		StartTime: timefmt.Format12h(b.StartMinute),
		EndTime:   timefmt.Format12h(b.EndMinute),
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func NewAvailabilityOut(w *models.AvailabilityWindow) AvailabilityOut {
	return AvailabilityOut{
		ID:        w.ID,
		Weekday:   w.Weekday,
		StartTime: timefmt.Format24h(w.StartMinute),
		EndTime:   timefmt.Format24h(w.EndMinute),
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
	}
}
