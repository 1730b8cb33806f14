package codec

import (
	"fmt"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
	"github.com/Jolbas/pgtemporal/temporal"
	"github.com/Jolbas/pgtemporal/wire"
)

func appendClock(dst []byte, t temporal.Time) []byte {
	dst = appendPad2(dst, t.Hour)
	dst = append(dst, ':')
	dst = appendPad2(dst, t.Minute)
	dst = append(dst, ':')
	dst = appendPad2(dst, t.Second)
	if t.Microsecond != 0 {
		dst = append(dst, '.')
		dst = appendPad6(dst, t.Microsecond)
	}

	return dst
}

// TimeTextEncoder encodes a time of day in text format.
//
// A value carrying a UTC offset is upgraded per value to the
// offset-aware wire type: the declared column type does not reveal
// which kind of value will arrive, so the decision is made on each
// value's shape.
type TimeTextEncoder struct{}

var _ Encoder[temporal.Time] = TimeTextEncoder{}

func (TimeTextEncoder) OID() uint32 {
	return wire.TimeOID
}

func (TimeTextEncoder) Format() format.Format {
	return format.Text
}

func (TimeTextEncoder) Append(dst []byte, t temporal.Time) ([]byte, error) {
	if t.HasOffset {
		return TimeTzTextEncoder{}.Append(dst, t)
	}
	if err := t.Validate(); err != nil {
		return dst, err
	}

	return appendClock(dst, t), nil
}

// TimeTzTextEncoder encodes an offset-carrying time of day in text
// format: the clock followed by the signed offset.
type TimeTzTextEncoder struct{}

var _ Encoder[temporal.Time] = TimeTzTextEncoder{}

func (TimeTzTextEncoder) OID() uint32 {
	return wire.TimeTzOID
}

func (TimeTzTextEncoder) Format() format.Format {
	return format.Text
}

func (TimeTzTextEncoder) Append(dst []byte, t temporal.Time) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return dst, err
	}

	dst = appendClock(dst, t)

	return appendOffset(dst, t.Offset), nil
}

// TimeBinaryEncoder encodes a time of day as a signed 64-bit count of
// microseconds since midnight, upgrading offset-carrying values to the
// offset-aware wire type per value.
type TimeBinaryEncoder struct{}

var _ Encoder[temporal.Time] = TimeBinaryEncoder{}

func (TimeBinaryEncoder) OID() uint32 {
	return wire.TimeOID
}

func (TimeBinaryEncoder) Format() format.Format {
	return format.Binary
}

func (TimeBinaryEncoder) Append(dst []byte, t temporal.Time) ([]byte, error) {
	if t.HasOffset {
		return TimeTzBinaryEncoder{}.Append(dst, t)
	}
	if err := t.Validate(); err != nil {
		return dst, err
	}

	return wire.AppendInt64(dst, t.Microseconds()), nil
}

// TimeTzBinaryEncoder encodes the microsecond count followed by the
// offset as a signed 32-bit count of seconds west of UTC, so the stored
// sign is the inverse of the value's east-positive offset.
type TimeTzBinaryEncoder struct{}

var _ Encoder[temporal.Time] = TimeTzBinaryEncoder{}

func (TimeTzBinaryEncoder) OID() uint32 {
	return wire.TimeTzOID
}

func (TimeTzBinaryEncoder) Format() format.Format {
	return format.Binary
}

func (TimeTzBinaryEncoder) Append(dst []byte, t temporal.Time) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return dst, err
	}

	dst = wire.AppendInt64(dst, t.Microseconds())

	return wire.AppendInt32(dst, int32(-t.Offset)), nil
}

// TimeTextDecoder decodes text times of day without an offset.
type TimeTextDecoder struct{}

var _ Decoder[temporal.Time] = TimeTextDecoder{}

func NewTimeTextDecoder(_ ConnContext) (TimeTextDecoder, error) {
	return TimeTextDecoder{}, nil
}

func (TimeTextDecoder) Format() format.Format {
	return format.Text
}

func (TimeTextDecoder) Decode(src []byte) (temporal.Time, error) {
	m := timePattern.FindSubmatch(src)
	if m == nil {
		return temporal.Time{}, fmt.Errorf("%w: cannot parse time %q", errs.ErrParse, src)
	}

	t, err := clockFromMatch(m[1], m[2], m[3], m[4])
	if err != nil {
		return temporal.Time{}, fmt.Errorf("cannot decode time %q: %w", src, err)
	}

	return t, nil
}

// TimeTzTextDecoder decodes text times of day carrying a signed offset
// with optional minute and second components. Second-resolution offsets
// are preserved.
type TimeTzTextDecoder struct{}

var _ Decoder[temporal.Time] = TimeTzTextDecoder{}

func NewTimeTzTextDecoder(_ ConnContext) (TimeTzTextDecoder, error) {
	return TimeTzTextDecoder{}, nil
}

func (TimeTzTextDecoder) Format() format.Format {
	return format.Text
}

func (TimeTzTextDecoder) Decode(src []byte) (temporal.Time, error) {
	m := timeOffsetPattern.FindSubmatch(src)
	if m == nil {
		return temporal.Time{}, fmt.Errorf("%w: cannot parse timetz %q", errs.ErrParse, src)
	}

	t, err := clockFromMatch(m[1], m[2], m[3], m[4])
	if err != nil {
		return temporal.Time{}, fmt.Errorf("cannot decode timetz %q: %w", src, err)
	}

	offset, err := signedOffsetSeconds(m[5], m[6], m[7], m[8])
	if err != nil {
		return temporal.Time{}, fmt.Errorf("cannot decode timetz %q: %w", src, err)
	}

	t.Offset = offset
	t.HasOffset = true

	return t, nil
}

// TimeBinaryDecoder decodes the microseconds-since-midnight form.
type TimeBinaryDecoder struct{}

var _ Decoder[temporal.Time] = TimeBinaryDecoder{}

func NewTimeBinaryDecoder(_ ConnContext) (TimeBinaryDecoder, error) {
	return TimeBinaryDecoder{}, nil
}

func (TimeBinaryDecoder) Format() format.Format {
	return format.Binary
}

func (TimeBinaryDecoder) Decode(src []byte) (temporal.Time, error) {
	us, err := wire.Int64(src)
	if err != nil {
		return temporal.Time{}, fmt.Errorf("cannot decode time: %w", err)
	}

	return temporal.TimeFromMicroseconds(us)
}

// TimeTzBinaryDecoder decodes the microsecond count plus the stored
// seconds-west offset, negating it back into seconds east.
type TimeTzBinaryDecoder struct{}

var _ Decoder[temporal.Time] = TimeTzBinaryDecoder{}

func NewTimeTzBinaryDecoder(_ ConnContext) (TimeTzBinaryDecoder, error) {
	return TimeTzBinaryDecoder{}, nil
}

func (TimeTzBinaryDecoder) Format() format.Format {
	return format.Binary
}

func (TimeTzBinaryDecoder) Decode(src []byte) (temporal.Time, error) {
	if len(src) != wire.TimeTzSize {
		return temporal.Time{}, fmt.Errorf("%w: expected %d bytes, got %d",
			errs.ErrParse, wire.TimeTzSize, len(src))
	}

	us, err := wire.Int64(src[:8])
	if err != nil {
		return temporal.Time{}, err
	}
	off, err := wire.Int32(src[8:])
	if err != nil {
		return temporal.Time{}, err
	}

	t, err := temporal.TimeFromMicroseconds(us)
	if err != nil {
		return temporal.Time{}, err
	}

	t.Offset = int(-off)
	t.HasOffset = true

	return t, nil
}

// clockFromMatch builds a validated time of day from the captured hour,
// minute, second and fraction fields.
func clockFromMatch(ho, mi, se, fr []byte) (temporal.Time, error) {
	hour, err := atoi(ho)
	if err != nil {
		return temporal.Time{}, err
	}
	minute, err := atoi(mi)
	if err != nil {
		return temporal.Time{}, err
	}
	sec, err := atoi(se)
	if err != nil {
		return temporal.Time{}, err
	}
	us, err := fracMicros(fr)
	if err != nil {
		return temporal.Time{}, err
	}

	return temporal.NewTime(hour, minute, sec, us)
}
