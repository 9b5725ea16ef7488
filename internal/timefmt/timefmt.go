package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
)

// All clinic times are provider-local civil time expressed as a
// minute-of-day in 0..1439. No timezone conversion happens anywhere.

const DateLayout = "2006-01-02"

var (
	clock12Re = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9]) ?([ap]m)$`)
	clock24Re = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

// Parse12h converts "H:MM am/pm" (case-insensitive, optional space before
// the period) to a minute-of-day. 12am maps to 0, 12pm to 720.
func Parse12h(s string) (int, error) {
	m := clock12Re.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, httperr.ErrBusiness("invalid_time_format")
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	if m[3] == "pm" && hour != 12 {
		hour += 12
	}
	if m[3] == "am" && hour == 12 {
		hour = 0
	}

	return hour*60 + minute, nil
}

// Format12h renders a minute-of-day as "hh:mm AM/PM".
func Format12h(minute int) string {
	hour := minute / 60
	min := minute % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%02d:%02d %s", hour12, min, period)
}

// Parse24h converts "HH:MM" to a minute-of-day.
func Parse24h(s string) (int, error) {
	m := clock24Re.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, httperr.ErrBusiness("invalid_time_format")
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	return hour*60 + minute, nil
}

// Format24h renders a minute-of-day as "HH:MM".
func Format24h(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ParseDate validates a "YYYY-MM-DD" string and returns it normalized.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", httperr.ErrBusiness("invalid_date")
	}
	return d.Format(DateLayout), nil
}

// Today returns the current civil date in server-local time.
func Today() string {
	return time.Now().Format(DateLayout)
}

// WeekdayName resolves the English day name ("Monday") for a "YYYY-MM-DD"
// date. Locale-independent: time.Weekday stringifies in English.
func WeekdayName(date string) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_date")
	}
	return d.Weekday().String(), nil
}
