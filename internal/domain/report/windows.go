package report

import (
	"time"

	"github.com/mynet/sales/internal/domain/shared"
)

// Window is an inclusive range of calendar dates
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether date falls inside the window
func (w Window) Contains(date time.Time) bool {
	d := shared.DateOf(date)
	return !d.Before(w.From) && !d.After(w.To)
}

// Days is the number of calendar days in the window
func (w Window) Days() int {
	return int(w.To.Sub(w.From).Hours()/24) + 1
}

// DailyWindows returns the single-day windows for date and the day before
func DailyWindows(date time.Time) (current, previous Window) {
	day := shared.DateOf(date)
	prev := day.AddDate(0, 0, -1)
	return Window{From: day, To: day}, Window{From: prev, To: prev}
}

// MonthlyWindows returns days 1..day of date's month and the same span of
// the previous month, capped at that month's length. January compares
// against December of the prior year.
func MonthlyWindows(date time.Time) (current, previous Window) {
	day := shared.DateOf(date)
	ym := shared.YearMonthOf(day)
	prev := ym.Previous()
	current = Window{From: ym.FirstDay(), To: day}
	previous = Window{From: prev.FirstDay(), To: prev.Day(day.Day())}
	return current, previous
}

// MonthToDate returns days 1..day of date's month
func MonthToDate(date time.Time) Window {
	cur, _ := MonthlyWindows(date)
	return cur
}

// MonthWindow covers a whole calendar month
func MonthWindow(ym shared.YearMonth) Window {
	return Window{From: ym.FirstDay(), To: ym.LastDay()}
}

// YearWindow covers a whole calendar year
func YearWindow(year int) Window {
	return Window{
		From: shared.NewDate(year, time.January, 1),
		To:   shared.NewDate(year, time.December, 31),
	}
}
