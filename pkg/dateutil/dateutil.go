package dateutil

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the form-field layout for dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// Today returns the calendar date of now in its own location
func Today(now time.Time) civil.Date {
	return civil.DateOf(now)
}

// IsZero reports whether d is the zero date
func IsZero(d civil.Date) bool {
	return d == civil.Date{}
}

// Age calculates the age at a given date
func Age(birthDate, atDate civil.Date) int {
	age := atDate.Year - birthDate.Year
	if atDate.Month < birthDate.Month ||
		(atDate.Month == birthDate.Month && atDate.Day < birthDate.Day) {
		age--
	}
	return age
}

// MonthsBetween returns the whole calendar months from start to end.
// When end's day-of-month is before start's, the partial month is dropped.
func MonthsBetween(start, end civil.Date) int {
	months := (end.Year-start.Year)*12 + int(end.Month) - int(start.Month)
	if end.Day < start.Day {
		months--
	}
	return months
}

// LastDayOfMonth returns the final calendar day of the given month
func LastDayOfMonth(year int, month time.Month) civil.Date {
	return civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
}

// EndOfMonthAfter shifts d by months and returns the last day of the resulting month.
// 2023-12-31 shifted by 9 gives 2024-09-30.
func EndOfMonthAfter(d civil.Date, months int) civil.Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	return LastDayOfMonth(first.Year(), first.Month())
}

// Weekday returns the day of the week for d
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// IsWorkingDay reports whether d falls Monday to Friday
func IsWorkingDay(d civil.Date) bool {
	wd := Weekday(d)
	return wd != time.Saturday && wd != time.Sunday
}

// NextWorkingDay returns the first Monday-to-Friday date strictly after d
func NextWorkingDay(d civil.Date) civil.Date {
	next := d.AddDays(1)
	for !IsWorkingDay(next) {
		next = next.AddDays(1)
	}
	return next
}

// DaysBetween returns the signed number of days from start to end
func DaysBetween(start, end civil.Date) int {
	return end.DaysSince(start)
}

// Later returns the later of two dates
func Later(a, b civil.Date) civil.Date {
	if a.After(b) {
		return a
	}
	return b
}

// Earlier returns the earlier of two dates
func Earlier(a, b civil.Date) civil.Date {
	if a.Before(b) {
		return a
	}
	return b
}
