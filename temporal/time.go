package temporal

import (
	"fmt"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/wire"
)

// Time is a time of day, optionally carrying a fixed UTC offset.
//
// Offset is in seconds east of UTC and is meaningful only when HasOffset
// is true. Offsets have second resolution; sub-minute offsets are
// preserved, not truncated.
type Time struct {
	Hour        int
	Minute      int
	Second      int
	Microsecond int
	Offset      int
	HasOffset   bool
}

// NewTime returns a validated Time without a UTC offset.
func NewTime(hour, minute, second, micro int) (Time, error) {
	t := Time{Hour: hour, Minute: minute, Second: second, Microsecond: micro}
	if err := t.Validate(); err != nil {
		return Time{}, err
	}

	return t, nil
}

// NewTimeWithOffset returns a validated Time carrying a fixed UTC
// offset, given in seconds east of UTC.
func NewTimeWithOffset(hour, minute, second, micro, offset int) (Time, error) {
	t := Time{
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		Microsecond: micro,
		Offset:      offset,
		HasOffset:   true,
	}
	if err := t.Validate(); err != nil {
		return Time{}, err
	}

	return t, nil
}

// Validate checks that every component lies within its range. A 24th
// hour is not representable, matching the wire contract's open upper
// bound at midnight.
func (t Time) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d", errs.ErrOutOfRange, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d", errs.ErrOutOfRange, t.Minute)
	}
	if t.Second < 0 || t.Second > 59 {
		return fmt.Errorf("%w: second %d", errs.ErrOutOfRange, t.Second)
	}
	if t.Microsecond < 0 || t.Microsecond > 999_999 {
		return fmt.Errorf("%w: microsecond %d", errs.ErrOutOfRange, t.Microsecond)
	}

	return nil
}

// Microseconds returns the time of day as microseconds since midnight.
func (t Time) Microseconds() int64 {
	return int64(t.Microsecond) + wire.MicrosPerSecond*(int64(t.Second)+60*(int64(t.Minute)+60*int64(t.Hour)))
}

// TimeFromMicroseconds reconstructs a time of day from microseconds
// since midnight by successive floor division. Values that do not fall
// inside a single day fail with errs.ErrOutOfRange.
func TimeFromMicroseconds(us int64) (Time, error) {
	val, micro := wire.FloorDiv(us, wire.MicrosPerSecond), wire.FloorMod(us, wire.MicrosPerSecond)
	val, sec := wire.FloorDiv(val, 60), wire.FloorMod(val, 60)
	hour, minute := wire.FloorDiv(val, 60), wire.FloorMod(val, 60)

	t := Time{
		Hour:        int(hour),
		Minute:      int(minute),
		Second:      int(sec),
		Microsecond: int(micro),
	}
	if err := t.Validate(); err != nil {
		return Time{}, err
	}

	return t, nil
}
