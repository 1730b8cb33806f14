package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
	"github.com/Jolbas/pgtemporal/style"
	"github.com/Jolbas/pgtemporal/wire"
)

// intervalParts decomposes a duration into the wire triple's day,
// second and microsecond fields by floor division, so a negative span
// normalizes to a negative day count with non-negative remainders.
func intervalParts(d time.Duration) (days, seconds, micros int64) {
	total := d.Microseconds()
	days = wire.FloorDiv(total, wire.MicrosPerDay)
	rem := total - days*wire.MicrosPerDay

	return days, rem / wire.MicrosPerSecond, rem % wire.MicrosPerSecond
}

// IntervalTextEncoder encodes a duration in text format.
//
// The sql_standard IntervalStyle needs explicit signs on every field:
// the default literal form would read a negative day with a positive
// time remainder as a single negative total. The style is resolved once
// at construction, not per call.
type IntervalTextEncoder struct {
	sqlStandard bool
}

var _ Encoder[time.Duration] = (*IntervalTextEncoder)(nil)

// NewIntervalTextEncoder snapshots the connection's IntervalStyle. An
// unrecognized style fails here.
func NewIntervalTextEncoder(ctx ConnContext) (*IntervalTextEncoder, error) {
	s, err := style.IntervalStyleOf(paramOf(ctx, "IntervalStyle"))
	if err != nil {
		return nil, err
	}

	return &IntervalTextEncoder{sqlStandard: s == style.IntervalSQLStandard}, nil
}

func (*IntervalTextEncoder) OID() uint32 {
	return wire.IntervalOID
}

func (*IntervalTextEncoder) Format() format.Format {
	return format.Text
}

func (e *IntervalTextEncoder) Append(dst []byte, d time.Duration) ([]byte, error) {
	days, seconds, micros := intervalParts(d)

	if e.sqlStandard {
		dst = appendSigned(dst, days)
		dst = append(dst, " day "...)
		dst = appendSigned(dst, seconds)
		dst = append(dst, " second "...)
		dst = appendSigned(dst, micros)
		dst = append(dst, " microsecond"...)

		return dst, nil
	}

	if days != 0 {
		dst = strconv.AppendInt(dst, days, 10)
		if days == 1 || days == -1 {
			dst = append(dst, " day, "...)
		} else {
			dst = append(dst, " days, "...)
		}
	}

	dst = strconv.AppendInt(dst, seconds/3600, 10)
	dst = append(dst, ':')
	dst = appendPad2(dst, int(seconds%3600/60))
	dst = append(dst, ':')
	dst = appendPad2(dst, int(seconds%60))
	if micros != 0 {
		dst = append(dst, '.')
		dst = appendPad6(dst, int(micros))
	}

	return dst, nil
}

func appendSigned(dst []byte, v int64) []byte {
	if v >= 0 {
		dst = append(dst, '+')
	}

	return strconv.AppendInt(dst, v, 10)
}

// IntervalBinaryEncoder encodes a duration as the wire triple of int64
// microseconds, int32 days and int32 months, with months always zero.
type IntervalBinaryEncoder struct{}

var _ Encoder[time.Duration] = IntervalBinaryEncoder{}

func (IntervalBinaryEncoder) OID() uint32 {
	return wire.IntervalOID
}

func (IntervalBinaryEncoder) Format() format.Format {
	return format.Binary
}

func (IntervalBinaryEncoder) Append(dst []byte, d time.Duration) ([]byte, error) {
	days, seconds, micros := intervalParts(d)

	dst = wire.AppendInt64(dst, seconds*wire.MicrosPerSecond+micros)
	dst = wire.AppendInt32(dst, int32(days))

	return wire.AppendInt32(dst, 0), nil
}

// IntervalTextDecoder decodes text intervals. Only the default postgres
// IntervalStyle is implemented; any other recognized style binds an
// unimplemented strategy at construction that fails every decode
// reporting the configured style.
type IntervalTextDecoder struct {
	notImplStyle string
}

var _ Decoder[time.Duration] = (*IntervalTextDecoder)(nil)

func NewIntervalTextDecoder(ctx ConnContext) (*IntervalTextDecoder, error) {
	s, err := style.IntervalStyleOf(paramOf(ctx, "IntervalStyle"))
	if err != nil {
		return nil, err
	}

	d := &IntervalTextDecoder{}
	if s != style.IntervalPostgres {
		d.notImplStyle = s.String()
	}

	return d, nil
}

func (*IntervalTextDecoder) Format() format.Format {
	return format.Text
}

func (d *IntervalTextDecoder) Decode(src []byte) (time.Duration, error) {
	if d.notImplStyle != "" {
		return 0, fmt.Errorf("%w: cannot parse interval with IntervalStyle %q: %q",
			errs.ErrNotImplemented, d.notImplStyle, src)
	}

	m := intervalPattern.FindSubmatch(src)
	if m == nil {
		return 0, fmt.Errorf("%w: cannot parse interval %q", errs.ErrParse, src)
	}

	// Every component of the pattern is optional, so garbage yields a
	// zero-width match; treat that as a parse failure too.
	matched := false
	for _, g := range m[1:] {
		if len(g) > 0 {
			matched = true
			break
		}
	}
	if !matched && len(src) > 0 {
		return 0, fmt.Errorf("%w: cannot parse interval %q", errs.ErrParse, src)
	}

	// Years and months contribute approximate day counts: 365 days per
	// year and 30 days per month, matching the wire protocol's own
	// interval semantics rather than calendar arithmetic.
	var days int64
	for i, perUnit := range [...]int64{365, 30, 1} {
		g := m[1+i]
		if len(g) == 0 {
			continue
		}

		n, err := atoi(g)
		if err != nil {
			return 0, fmt.Errorf("cannot decode interval %q: %w", src, err)
		}
		days += perUnit * int64(n)
	}

	var seconds, us int64
	if len(m[5]) > 0 {
		h, err := atoi(m[5])
		if err != nil {
			return 0, fmt.Errorf("cannot decode interval %q: %w", src, err)
		}
		mi, err := atoi(m[6])
		if err != nil {
			return 0, fmt.Errorf("cannot decode interval %q: %w", src, err)
		}
		se, err := atoi(m[7])
		if err != nil {
			return 0, fmt.Errorf("cannot decode interval %q: %w", src, err)
		}
		fr, err := fracMicros(m[8])
		if err != nil {
			return 0, fmt.Errorf("cannot decode interval %q: %w", src, err)
		}

		seconds = 3600*int64(h) + 60*int64(mi) + int64(se)
		us = int64(fr)
		if len(m[4]) > 0 && m[4][0] == '-' {
			seconds = -seconds
			us = -us
		}
	}

	dur, ok := durationFrom(days, seconds*wire.MicrosPerSecond+us)
	if !ok {
		return 0, fmt.Errorf("%w: interval %q", errs.ErrOutOfRange, src)
	}

	return dur, nil
}

// IntervalBinaryDecoder decodes the binary triple, folding months into
// days with the same 30-day/365-day approximation used by text
// decoding. The folding follows the sign of the month count,
// independent of the sign of the day count.
type IntervalBinaryDecoder struct{}

var _ Decoder[time.Duration] = IntervalBinaryDecoder{}

func NewIntervalBinaryDecoder(_ ConnContext) (IntervalBinaryDecoder, error) {
	return IntervalBinaryDecoder{}, nil
}

func (IntervalBinaryDecoder) Format() format.Format {
	return format.Binary
}

func (IntervalBinaryDecoder) Decode(src []byte) (time.Duration, error) {
	if len(src) != wire.IntervalSize {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrParse, wire.IntervalSize, len(src))
	}

	micros, err := wire.Int64(src[:8])
	if err != nil {
		return 0, err
	}
	d32, err := wire.Int32(src[8:12])
	if err != nil {
		return 0, err
	}
	months, err := wire.Int32(src[12:])
	if err != nil {
		return 0, err
	}

	days := int64(d32)
	if months > 0 {
		years, rem := int64(months)/12, int64(months)%12
		days += 30*rem + 365*years
	} else if months < 0 {
		pos := -int64(months)
		years, rem := pos/12, pos%12
		days -= 30*rem + 365*years
	}

	dur, ok := durationFrom(days, micros)
	if !ok {
		return 0, fmt.Errorf("%w: interval of %d days %d microseconds", errs.ErrOutOfRange, days, micros)
	}

	return dur, nil
}

// durationFrom combines a day count and a microsecond remainder into a
// time.Duration, reporting overflow of the nanosecond representation.
func durationFrom(days, micros int64) (time.Duration, bool) {
	dayUs, ok := wire.MulInt64(days, wire.MicrosPerDay)
	if !ok {
		return 0, false
	}

	total, ok := wire.AddInt(dayUs, micros)
	if !ok {
		return 0, false
	}

	ns, ok := wire.MulInt64(total, 1000)
	if !ok {
		return 0, false
	}

	return time.Duration(ns), true
}
