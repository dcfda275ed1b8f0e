package shared

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date in t's own location and
// returns it as midnight UTC. Calendar dates are stored and compared
// in this normalized form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a normalized calendar date
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, InvalidInput(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// Today returns the current calendar date in loc
func Today(clock Clock, loc *time.Location) time.Time {
	return DateOf(clock.Now().In(loc))
}

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a YYYY-MM string
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, InvalidInput(fmt.Sprintf("invalid month %q, expected YYYY-MM", s))
	}
	ym := YearMonthOf(t)
	return ym, ym.Validate()
}

// YearMonthOf returns the month containing date
func YearMonthOf(date time.Time) YearMonth {
	return YearMonth{Year: date.Year(), Month: date.Month()}
}

// Previous returns the month before ym, rolling January back to December
func (ym YearMonth) Previous() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// FirstDay returns the first calendar date of the month
func (ym YearMonth) FirstDay() time.Time {
	return NewDate(ym.Year, ym.Month, 1)
}

// LastDay returns the last calendar date of the month
func (ym YearMonth) LastDay() time.Time {
	return ym.FirstDay().AddDate(0, 1, -1)
}

// Days returns the number of days in the month
func (ym YearMonth) Days() int {
	return ym.LastDay().Day()
}

// Day returns the given day of the month, capped at the month's length
func (ym YearMonth) Day(day int) time.Time {
	if n := ym.Days(); day > n {
		day = n
	}
	if day < 1 {
		day = 1
	}
	return NewDate(ym.Year, ym.Month, day)
}

// Contains reports whether date falls in the month
func (ym YearMonth) Contains(date time.Time) bool {
	return date.Year() == ym.Year && date.Month() == ym.Month
}

// Validate checks the month is in 1..12 and the year is plausible
func (ym YearMonth) Validate() error {
	if ym.Month < time.January || ym.Month > time.December {
		return InvalidInput("month must be between 1 and 12")
	}
	if ym.Year < 2000 || ym.Year > 9999 {
		return InvalidInput("year out of range")
	}
	return nil
}

// String formats as YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// EachDay calls fn for every calendar date from start to end inclusive
func EachDay(start, end time.Time, fn func(time.Time)) {
	for d := DateOf(start); !d.After(DateOf(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
