package temporal

import (
	"time"
)

// Timestamp is a combined date and time of day, optionally carrying a
// timezone. A nil Loc marks a naive value with no timezone information;
// a non-nil Loc marks an offset-aware value whose components are wall
// clock readings in that location.
type Timestamp struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
	Loc         *time.Location
}

// Aware reports whether the timestamp carries timezone information.
func (ts Timestamp) Aware() bool {
	return ts.Loc != nil
}

// Date returns the calendar date component.
func (ts Timestamp) Date() Date {
	return Date{Year: ts.Year, Month: ts.Month, Day: ts.Day}
}

// Clock returns the time-of-day component without offset information.
func (ts Timestamp) Clock() Time {
	return Time{Hour: ts.Hour, Minute: ts.Minute, Second: ts.Second, Microsecond: ts.Microsecond}
}

// Validate checks both the calendar and the clock components.
func (ts Timestamp) Validate() error {
	if err := ts.Date().Validate(); err != nil {
		return err
	}

	return ts.Clock().Validate()
}

// AsTime converts the timestamp into a time.Time for timezone
// arithmetic. Naive values are anchored in UTC.
func (ts Timestamp) AsTime() time.Time {
	loc := ts.Loc
	if loc == nil {
		loc = time.UTC
	}

	return time.Date(ts.Year, time.Month(ts.Month), ts.Day,
		ts.Hour, ts.Minute, ts.Second, ts.Microsecond*1000, loc)
}

// FromTime captures the wall clock components and location of t as an
// offset-aware Timestamp. Sub-microsecond precision is discarded.
func FromTime(t time.Time) Timestamp {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	return Timestamp{
		Year:        year,
		Month:       int(month),
		Day:         day,
		Hour:        hour,
		Minute:      minute,
		Second:      sec,
		Microsecond: t.Nanosecond() / 1000,
		Loc:         t.Location(),
	}
}
