package models

import "time"

// AvailabilityWindow is one recurring weekly interval during which the
// provider accepts bookings. Multiple windows per weekday are allowed and
// may overlap; they are never merged or de-duplicated.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday string `gorm:"size:10;not null;index" json:"weekday"`

	// Minute-of-day, 0..1439, half-open [start, end).
	StartMinute int `gorm:"not null" json:"start_minute"`
	EndMinute   int `gorm:"not null" json:"end_minute"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}
