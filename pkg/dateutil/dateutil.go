package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a day does not exist in the given month
var ErrInvalidDate = errors.New("day is out of range for month")

// monthNames maps month number to its Spanish name. Index 0 is unused.
var monthNames = [13]string{
	"",
	"Enero",
	"Febrero",
	"Marzo",
	"Abril",
	"Mayo",
	"Junio",
	"Julio",
	"Agosto",
	"Septiembre",
	"Octubre",
	"Noviembre",
	"Diciembre",
}

// MonthName returns the Spanish name of the month (1-12), or "" when out of range
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// NextMonthRepr returns the lower-cased name of the month after the given one.
// December wraps to January.
func NextMonthRepr(month int) string {
	return strings.ToLower(MonthName(month%12 + 1))
}

// NextYear returns the year the following month belongs to
func NextYear(year, month int) int {
	if month == 12 {
		return year + 1
	}
	return year
}

// DaysInMonth returns the number of days between the first day of the month
// and the first day of the next one
func DaysInMonth(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(NextYear(year, month), time.Month(month%12+1), 1, 0, 0, 0, 0, time.UTC)
	return int(next.Sub(first).Hours() / 24)
}

// FormatHour formats a whole hour as HH:00
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ISOWeekday returns the ISO weekday number, Monday = 1 ... Sunday = 7
func ISOWeekday(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return weekday
}

// Date builds a UTC calendar date. Unlike time.Date it refuses to normalize
// overflowing values, so 2021-02-30 is an error rather than March 2nd.
func Date(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// ParseDate parses date string in the formats accepted by holiday files.
// Timestamps keep their time of day and zone.
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02/01/2006",
		"02.01.2006",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}
