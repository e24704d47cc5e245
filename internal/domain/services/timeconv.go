package services

import (
	"fmt"
	"time"
)

const (
	// ISTOffsetMinutes is the fixed offset of India Standard Time from UTC.
	ISTOffsetMinutes = 330
	// ISTLabel is appended to rendered clock times.
	ISTLabel = "IST"

	minutesPerDay = 24 * 60

	// unknownField is rendered when an instant cannot be determined.
	unknownField = "TBA"
)

// LocalTime is an instant rendered in the target zone.
type LocalTime struct {
	// Date looks like "Fri, May 16, 2025".
	Date string
	// Time looks like "3:30 AM IST".
	Time string

	Year      int
	Month     time.Month
	Day       int
	Hour      int
	Minute    int
	DayOffset int
}

// UnknownLocalTime is returned alongside ErrParseFailure so callers can
// still render something.
var UnknownLocalTime = LocalTime{Date: unknownField, Time: unknownField}

// Known reports whether l holds a converted instant.
func (l LocalTime) Known() bool {
	return l.Date != unknownField
}

// ToIST converts an instant to IST without consulting host time zone data.
// A zero instant is treated as unknown.
func ToIST(t time.Time) (LocalTime, error) {
	if t.IsZero() {
		return UnknownLocalTime, fmt.Errorf("%w: zero instant", ErrParseFailure)
	}
	return convertOffset(t.UTC(), ISTOffsetMinutes, ISTLabel), nil
}

// ConvertISO is the string entry point of the conversion: it parses an
// ISO-8601 instant and converts it to IST. Callers holding a time.Time use ToIST.
func ConvertISO(s string) (LocalTime, error) {
	t, err := ParseInstant(s)
	if err != nil {
		return UnknownLocalTime, err
	}
	return ToIST(t)
}

// instantLayouts are tried in order. Layouts without a zone are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseInstant parses an ISO-8601 timestamp into a UTC instant.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid instant %q", ErrParseFailure, s)
}

// convertOffset shifts the UTC wall clock by offset minutes with a single
// day rollover in either direction. |offset| must be below one day.
func convertOffset(u time.Time, offset int, label string) LocalTime {
	year, month, day := u.Date()

	total := u.Hour()*60 + u.Minute() + offset

	dayOffset := 0
	if total >= minutesPerDay {
		total -= minutesPerDay
		dayOffset = 1
	} else if total < 0 {
		total += minutesPerDay
		dayOffset = -1
	}

	hour := total / 60
	minute := total % 60

	// time.Date normalizes day overflow into month and year.
	local := time.Date(year, month, day+dayOffset, 0, 0, 0, 0, time.UTC)

	return LocalTime{
		Date:      formatDate(local),
		Time:      formatClock(hour, minute, label),
		Year:      local.Year(),
		Month:     local.Month(),
		Day:       local.Day(),
		Hour:      hour,
		Minute:    minute,
		DayOffset: dayOffset,
	}
}

func formatDate(d time.Time) string {
	return fmt.Sprintf("%s, %s %d, %d", d.Weekday().String()[:3], d.Month(), d.Day(), d.Year())
}

func formatClock(hour, minute int, label string) string {
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s %s", display, minute, meridiem, label)
}
