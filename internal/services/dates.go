package services

import (
	"errors"
	"time"
)

// DateKeyLayout is the canonical calendar-date key format. Day logs are
// keyed by it and event logs denormalize it from their timestamp.
const DateKeyLayout = "2006-01-02"

var ErrBadDateKey = errors.New("malformed date key")

// DateKey renders the calendar date of value in the given location.
func DateKey(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key to local midnight.
func ParseDateKey(key string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	value, err := time.ParseInLocation(DateKeyLayout, key, location)
	if err != nil {
		return time.Time{}, ErrBadDateKey
	}
	return value, nil
}

// DateAtLocation truncates value to local midnight.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDaysBetween counts whole calendar days from one date to another,
// ignoring clock time. Both dates are reduced to their local year/month/day
// and differenced on a UTC scale, so a daylight-saving shift inside the
// span can never produce an off-by-one.
func CalendarDaysBetween(from time.Time, to time.Time, location *time.Location) int {
	if location == nil {
		location = time.UTC
	}
	fromYear, fromMonth, fromDay := from.In(location).Date()
	toYear, toMonth, toDay := to.In(location).Date()
	fromMidnight := time.Date(fromYear, fromMonth, fromDay, 0, 0, 0, 0, time.UTC)
	toMidnight := time.Date(toYear, toMonth, toDay, 0, 0, 0, 0, time.UTC)
	return int(toMidnight.Sub(fromMidnight) / (24 * time.Hour))
}

// EpochMillis is the storage representation of an instant.
func EpochMillis(value time.Time) int64 {
	return value.UnixMilli()
}
