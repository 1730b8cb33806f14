// Package temporal defines the native value types produced and consumed
// by the codecs: calendar dates, times of day with an optional fixed UTC
// offset, and timestamps with an optional timezone. Durations use the
// standard time.Duration.
//
// The representable calendar range is years 1 through 9999 in the
// proleptic Gregorian calendar. Values outside that range fail with the
// sign-classified sentinels errs.ErrTooSmall and errs.ErrTooLarge.
package temporal

import (
	"fmt"

	"github.com/Jolbas/pgtemporal/errs"
)

// Bounds of the representable calendar range.
const (
	MinYear = 1
	MaxYear = 9999

	MinOrdinal = 1       // 0001-01-01
	MaxOrdinal = 3652059 // 9999-12-31
)

// daysBeforeMonth[m-1] is the number of days in a non-leap year before
// month m.
var daysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// Date is a proleptic-Gregorian calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate returns a validated Date.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}

	return d, nil
}

// Validate checks that the date lies within the representable calendar
// range. Years outside [MinYear, MaxYear] fail with the sign-classified
// range sentinels; invalid month or day values fail with
// errs.ErrOutOfRange.
func (d Date) Validate() error {
	if d.Year < MinYear {
		return fmt.Errorf("%w: date before year 1", errs.ErrTooSmall)
	}
	if d.Year > MaxYear {
		return fmt.Errorf("%w: date after year 10K", errs.ErrTooLarge)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d", errs.ErrOutOfRange, d.Month)
	}
	if d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: day %d of month %d", errs.ErrOutOfRange, d.Day, d.Month)
	}

	return nil
}

// Ordinal returns the proleptic-Gregorian ordinal of the date, counting
// 0001-01-01 as ordinal 1. The date must be valid.
func (d Date) Ordinal() int {
	o := daysBeforeYear(d.Year) + daysBeforeMonth[d.Month-1] + d.Day
	if d.Month > 2 && isLeap(d.Year) {
		o++
	}

	return o
}

// DateFromOrdinal converts a proleptic-Gregorian ordinal back into a
// calendar date. Ordinals outside [MinOrdinal, MaxOrdinal] fail with the
// sign-classified range sentinels.
func DateFromOrdinal(n int) (Date, error) {
	if n < MinOrdinal {
		return Date{}, fmt.Errorf("%w: date before year 1", errs.ErrTooSmall)
	}
	if n > MaxOrdinal {
		return Date{}, fmt.Errorf("%w: date after year 10K", errs.ErrTooLarge)
	}

	// Peel off 400-, 100-, 4- and 1-year cycles. The cycle lengths are
	// 146097, 36524, 1461 and 365 days; n1 == 4 or n100 == 4 means the
	// ordinal landed on the last day of a leap year, which the division
	// chain attributes to the following year.
	n--
	n400, n := n/146097, n%146097
	n100, n := n/36524, n%36524
	n4, n := n/1461, n%1461
	n1, n := n/365, n%365

	year := 400*n400 + 100*n100 + 4*n4 + n1 + 1
	if n1 == 4 || n100 == 4 {
		return Date{Year: year - 1, Month: 12, Day: 31}, nil
	}

	for month := 1; ; month++ {
		dim := daysInMonth(year, month)
		if n < dim {
			return Date{Year: year, Month: month, Day: n + 1}, nil
		}
		n -= dim
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	if month == 12 {
		return 31
	}

	return daysBeforeMonth[month] - daysBeforeMonth[month-1]
}

func daysBeforeYear(year int) int {
	n := year - 1

	return 365*n + n/4 - n/100 + n/400
}
