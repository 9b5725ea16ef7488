package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type DayHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"` // "09:00"
	End     string `json:"end"`   // "17:00"
}

// WeekHours maps weekday names ("Monday") to their configured working
// hours. Stored as a jsonb column.
type WeekHours map[string]DayHours

func (w WeekHours) Value() (driver.Value, error) {
	if w == nil {
		return "{}", nil
	}
	b, err := json.Marshal(w)
	return string(b), err
}

func (w *WeekHours) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	case nil:
		*w = nil
		return nil
	}
	return errors.New("unsupported week_hours column type")
}

// BookingSettings is a singleton: saving a new record replaces the previous
// one wholesale, never field by field.
type BookingSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SlotDurationMin int       `gorm:"not null;default:30" json:"slot_duration"`
	WorkingHours    WeekHours `gorm:"type:jsonb" json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
