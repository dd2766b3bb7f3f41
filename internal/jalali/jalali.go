// Package jalali converts between Gregorian and Jalali (solar Hijri) dates
// and renders the display strings the task API serves alongside each task.
package jalali

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Date is a Jalali calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromTime converts a Gregorian time to its Jalali date.
func FromTime(t time.Time) Date {
	pt := ptime.New(t)
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}

// ToTime converts a Jalali date to the Gregorian midnight of that day, UTC.
func ToTime(d Date) time.Time {
	return ptime.Date(d.Year, ptime.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Time()
}

// Today returns the current Jalali date.
func Today() Date {
	return FromTime(time.Now())
}

// DateString renders a Gregorian time as a short Jalali date,
// year-month-day without zero padding (e.g. "1403-1-5").
func DateString(t time.Time) string {
	d := FromTime(t)
	return fmt.Sprintf("%d-%d-%d", d.Year, d.Month, d.Day)
}

// FormattedDate renders a Gregorian time as a human-readable Jalali date
// with the Persian month name (e.g. "فروردین 05، 1403").
func FormattedDate(t time.Time) string {
	pt := ptime.New(t)
	return fmt.Sprintf("%s %02d، %d", pt.Month().String(), pt.Day(), pt.Year())
}

// MonthName returns the Persian name of a Jalali month (1..12).
func MonthName(month int) string {
	return ptime.Month(month).String()
}

// MonthLength returns the number of days in the given Jalali month.
func MonthLength(year, month int) int {
	first := ToTime(Date{Year: year, Month: month, Day: 1})
	last := firstOfNextMonth(year, month).AddDate(0, 0, -1)
	return int(last.Sub(first).Hours()/24) + 1
}

// MonthRange returns the Gregorian dates of the first and last day of the
// given Jalali month.
func MonthRange(year, month int) (start, end time.Time) {
	start = ToTime(Date{Year: year, Month: month, Day: 1})
	end = firstOfNextMonth(year, month).AddDate(0, 0, -1)
	return start, end
}

func firstOfNextMonth(year, month int) time.Time {
	if month == 12 {
		return ToTime(Date{Year: year + 1, Month: 1, Day: 1})
	}
	return ToTime(Date{Year: year, Month: month + 1, Day: 1})
}
