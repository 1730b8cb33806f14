package codec

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
	"github.com/Jolbas/pgtemporal/style"
	"github.com/Jolbas/pgtemporal/temporal"
	"github.com/Jolbas/pgtemporal/wire"
)

func appendTimestampText(dst []byte, ts temporal.Timestamp) []byte {
	dst = appendPad4(dst, ts.Year)
	dst = append(dst, '-')
	dst = appendPad2(dst, ts.Month)
	dst = append(dst, '-')
	dst = appendPad2(dst, ts.Day)
	dst = append(dst, ' ')

	return appendClock(dst, ts.Clock())
}

// TimestampTextEncoder encodes a timestamp in the literal ISO-like text
// form, which the server reads unambiguously under every DateStyle.
//
// The offset-aware wire type is the default; a naive value is
// downgraded per value to the plain timestamp type, symmetric to the
// time encoder's upgrade.
type TimestampTextEncoder struct{}

var _ Encoder[temporal.Timestamp] = TimestampTextEncoder{}

func (TimestampTextEncoder) OID() uint32 {
	return wire.TimestampTzOID
}

func (TimestampTextEncoder) Format() format.Format {
	return format.Text
}

func (TimestampTextEncoder) Append(dst []byte, ts temporal.Timestamp) ([]byte, error) {
	if !ts.Aware() {
		return TimestampNoTzTextEncoder{}.Append(dst, ts)
	}
	if err := ts.Validate(); err != nil {
		return dst, err
	}

	dst = appendTimestampText(dst, ts)
	_, offset := ts.AsTime().Zone()

	return appendOffset(dst, offset), nil
}

// TimestampNoTzTextEncoder encodes a naive timestamp in text format.
type TimestampNoTzTextEncoder struct{}

var _ Encoder[temporal.Timestamp] = TimestampNoTzTextEncoder{}

func (TimestampNoTzTextEncoder) OID() uint32 {
	return wire.TimestampOID
}

func (TimestampNoTzTextEncoder) Format() format.Format {
	return format.Text
}

func (TimestampNoTzTextEncoder) Append(dst []byte, ts temporal.Timestamp) ([]byte, error) {
	if err := ts.Validate(); err != nil {
		return dst, err
	}

	return appendTimestampText(dst, ts), nil
}

// TimestampBinaryEncoder encodes a timestamp as a signed 64-bit count
// of microseconds from 2000-01-01T00:00:00 UTC, downgrading naive
// values to the naive wire type per value.
type TimestampBinaryEncoder struct{}

var _ Encoder[temporal.Timestamp] = TimestampBinaryEncoder{}

func (TimestampBinaryEncoder) OID() uint32 {
	return wire.TimestampTzOID
}

func (TimestampBinaryEncoder) Format() format.Format {
	return format.Binary
}

func (TimestampBinaryEncoder) Append(dst []byte, ts temporal.Timestamp) ([]byte, error) {
	if !ts.Aware() {
		return TimestampNoTzBinaryEncoder{}.Append(dst, ts)
	}
	if err := ts.Validate(); err != nil {
		return dst, err
	}

	t := ts.AsTime()
	micros := (t.Unix()-wire.EpochUnixSeconds)*wire.MicrosPerSecond + int64(t.Nanosecond()/1000)

	return wire.AppendInt64(dst, micros), nil
}

// TimestampNoTzBinaryEncoder encodes the same microsecond delta against
// the naive epoch, with no UTC normalization.
type TimestampNoTzBinaryEncoder struct{}

var _ Encoder[temporal.Timestamp] = TimestampNoTzBinaryEncoder{}

func (TimestampNoTzBinaryEncoder) OID() uint32 {
	return wire.TimestampOID
}

func (TimestampNoTzBinaryEncoder) Format() format.Format {
	return format.Binary
}

func (TimestampNoTzBinaryEncoder) Append(dst []byte, ts temporal.Timestamp) ([]byte, error) {
	if err := ts.Validate(); err != nil {
		return dst, err
	}

	days := int64(ts.Date().Ordinal() - wire.DateEpochOrdinal)
	micros := days*wire.MicrosPerDay + ts.Clock().Microseconds()

	return wire.AppendInt64(dst, micros), nil
}

// TimestampTextDecoder decodes naive text timestamps. Construction
// resolves one of five field layouts from the connection's DateStyle:
// the three numeric orders or the two verbose layouts with a leading
// weekday and an abbreviated month.
type TimestampTextDecoder struct {
	order style.DateOrder
	re    *regexp.Regexp
}

var _ Decoder[temporal.Timestamp] = (*TimestampTextDecoder)(nil)

func NewTimestampTextDecoder(ctx ConnContext) (*TimestampTextDecoder, error) {
	order, err := style.TimestampOrderOf(paramOf(ctx, "DateStyle"))
	if err != nil {
		return nil, err
	}

	re := timestampPattern
	if order == style.OrderVerboseDayMonth || order == style.OrderVerboseMonthDay {
		re = timestampVerbosePattern
	}

	return &TimestampTextDecoder{order: order, re: re}, nil
}

func (*TimestampTextDecoder) Format() format.Format {
	return format.Text
}

func (d *TimestampTextDecoder) Decode(src []byte) (temporal.Timestamp, error) {
	m := d.re.FindSubmatch(src)
	if m == nil {
		if bytes.HasSuffix(src, []byte("BC")) {
			return temporal.Timestamp{}, fmt.Errorf("%w: BC timestamps not supported: %q", errs.ErrParse, src)
		}

		return temporal.Timestamp{}, fmt.Errorf("%w: cannot parse timestamp %q", errs.ErrParse, src)
	}

	var ye, mo, da, ho, mi, se, fr []byte
	var month int

	switch d.order {
	case style.OrderYMD:
		ye, mo, da, ho, mi, se, fr = m[1], m[2], m[3], m[4], m[5], m[6], m[7]
	case style.OrderDMY:
		da, mo, ye, ho, mi, se, fr = m[1], m[2], m[3], m[4], m[5], m[6], m[7]
	case style.OrderMDY:
		mo, da, ye, ho, mi, se, fr = m[1], m[2], m[3], m[4], m[5], m[6], m[7]
	default:
		if d.order == style.OrderVerboseDayMonth {
			da, mo, ho, mi, se, fr, ye = m[1], m[2], m[3], m[4], m[5], m[6], m[7]
		} else {
			mo, da, ho, mi, se, fr, ye = m[1], m[2], m[3], m[4], m[5], m[6], m[7]
		}

		var ok bool
		month, ok = monthAbbr[string(mo)]
		if !ok {
			return temporal.Timestamp{}, fmt.Errorf("%w: cannot parse month %q", errs.ErrParse, mo)
		}
		mo = nil
	}

	if mo != nil {
		var err error
		month, err = atoi(mo)
		if err != nil {
			return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamp %q: %w", src, err)
		}
	}

	ts, err := timestampFromMatch(ye, month, da, ho, mi, se, fr)
	if err != nil {
		return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamp %q: %w", src, err)
	}

	return ts, nil
}

// TimestampTzTextDecoder decodes offset-aware text timestamps into the
// connection's timezone. Only the ISO layout is implemented; any other
// recognized DateStyle binds an unimplemented strategy at construction
// that fails every decode reporting the offending style.
type TimestampTzTextDecoder struct {
	loc          *time.Location
	notImplStyle string
}

var _ Decoder[temporal.Timestamp] = (*TimestampTzTextDecoder)(nil)

func NewTimestampTzTextDecoder(ctx ConnContext) (*TimestampTzTextDecoder, error) {
	ds := paramOf(ctx, "DateStyle")
	if _, err := style.TimestampOrderOf(ds); err != nil {
		return nil, err
	}

	d := &TimestampTzTextDecoder{loc: timezoneOf(ctx)}
	if !style.IsISO(ds) {
		d.notImplStyle = string(ds)
	}

	return d, nil
}

func (*TimestampTzTextDecoder) Format() format.Format {
	return format.Text
}

func (d *TimestampTzTextDecoder) Decode(src []byte) (temporal.Timestamp, error) {
	if d.notImplStyle != "" {
		return temporal.Timestamp{}, fmt.Errorf("%w: cannot parse timestamptz with DateStyle %q: %q",
			errs.ErrNotImplemented, d.notImplStyle, src)
	}

	m := timestampOffsetPattern.FindSubmatch(src)
	if m == nil {
		if bytes.HasSuffix(src, []byte("BC")) {
			return temporal.Timestamp{}, fmt.Errorf("%w: BC timestamps not supported: %q", errs.ErrParse, src)
		}

		return temporal.Timestamp{}, fmt.Errorf("%w: cannot parse timestamptz %q", errs.ErrParse, src)
	}

	month, err := atoi(m[2])
	if err != nil {
		return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamptz %q: %w", src, err)
	}

	ts, err := timestampFromMatch(m[1], month, m[3], m[4], m[5], m[6], m[7])
	if err != nil {
		// The temporary UTC-anchored value itself cannot be built; the
		// year bound errors arrive already sign-classified.
		return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamptz %q: %w", src, err)
	}

	offset, err := signedOffsetSeconds(m[8], m[9], m[10], m[11])
	if err != nil {
		return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamptz %q: %w", src, err)
	}

	// Anchor the parsed wall clock in UTC, remove the parsed offset to
	// reach the absolute instant, then move into the connection
	// timezone so text and binary decoding agree on the result.
	ts.Loc = time.UTC
	local := ts.AsTime().Add(-time.Duration(offset) * time.Second).In(d.loc)

	if y := local.Year(); y < temporal.MinYear || y > temporal.MaxYear {
		// The shift into the connection timezone pushed the value past
		// the representable range even though the source data itself is
		// fine. Keep the parsed wall clock, fixed at its own offset.
		ts.Loc = time.FixedZone("", offset)

		return ts, nil
	}

	return temporal.FromTime(local), nil
}

// TimestampBinaryDecoder decodes naive binary timestamps.
type TimestampBinaryDecoder struct{}

var _ Decoder[temporal.Timestamp] = TimestampBinaryDecoder{}

func NewTimestampBinaryDecoder(_ ConnContext) (TimestampBinaryDecoder, error) {
	return TimestampBinaryDecoder{}, nil
}

func (TimestampBinaryDecoder) Format() format.Format {
	return format.Binary
}

func (TimestampBinaryDecoder) Decode(src []byte) (temporal.Timestamp, error) {
	micros, err := wire.Int64(src)
	if err != nil {
		return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamp: %w", err)
	}

	days := wire.FloorDiv(micros, wire.MicrosPerDay)
	ordinal := days + wire.DateEpochOrdinal

	if ordinal < temporal.MinOrdinal || ordinal > temporal.MaxOrdinal {
		return temporal.Timestamp{}, rangeByMicros(micros)
	}

	date, err := temporal.DateFromOrdinal(int(ordinal))
	if err != nil {
		return temporal.Timestamp{}, err
	}

	clock, err := temporal.TimeFromMicroseconds(micros - days*wire.MicrosPerDay)
	if err != nil {
		return temporal.Timestamp{}, err
	}

	return temporal.Timestamp{
		Year:        date.Year,
		Month:       date.Month,
		Day:         date.Day,
		Hour:        clock.Hour,
		Minute:      clock.Minute,
		Second:      clock.Second,
		Microsecond: clock.Microsecond,
	}, nil
}

// TimestampTzBinaryDecoder decodes offset-aware binary timestamps into
// the connection's timezone, resolved once at construction.
type TimestampTzBinaryDecoder struct {
	loc *time.Location
}

var _ Decoder[temporal.Timestamp] = (*TimestampTzBinaryDecoder)(nil)

func NewTimestampTzBinaryDecoder(ctx ConnContext) (*TimestampTzBinaryDecoder, error) {
	return &TimestampTzBinaryDecoder{loc: timezoneOf(ctx)}, nil
}

func (*TimestampTzBinaryDecoder) Format() format.Format {
	return format.Binary
}

func (d *TimestampTzBinaryDecoder) Decode(src []byte) (temporal.Timestamp, error) {
	micros, err := wire.Int64(src)
	if err != nil {
		return temporal.Timestamp{}, fmt.Errorf("cannot decode timestamptz: %w", err)
	}

	secs := wire.FloorDiv(micros, wire.MicrosPerSecond)
	rem := micros - secs*wire.MicrosPerSecond
	local := time.Unix(wire.EpochUnixSeconds+secs, rem*1000).In(d.loc)

	// The range check applies to the converted local time: an instant
	// past the UTC maximum is still representable in a zone behind UTC,
	// and one before the UTC minimum in a zone ahead of it.
	if y := local.Year(); y < temporal.MinYear || y > temporal.MaxYear {
		return temporal.Timestamp{}, rangeByMicros(micros)
	}

	return temporal.FromTime(local), nil
}

// rangeByMicros classifies an out-of-range epoch delta by its sign.
func rangeByMicros(micros int64) error {
	if micros <= 0 {
		return fmt.Errorf("%w: timestamp before year 1", errs.ErrTooSmall)
	}

	return fmt.Errorf("%w: timestamp after year 10K", errs.ErrTooLarge)
}

// timestampFromMatch builds a validated naive timestamp from captured
// text fields; month arrives already resolved.
func timestampFromMatch(ye []byte, month int, da, ho, mi, se, fr []byte) (temporal.Timestamp, error) {
	year, err := atoi(ye)
	if err != nil {
		return temporal.Timestamp{}, err
	}
	day, err := atoi(da)
	if err != nil {
		return temporal.Timestamp{}, err
	}
	hour, err := atoi(ho)
	if err != nil {
		return temporal.Timestamp{}, err
	}
	minute, err := atoi(mi)
	if err != nil {
		return temporal.Timestamp{}, err
	}
	sec, err := atoi(se)
	if err != nil {
		return temporal.Timestamp{}, err
	}
	us, err := fracMicros(fr)
	if err != nil {
		return temporal.Timestamp{}, err
	}

	ts := temporal.Timestamp{
		Year:        year,
		Month:       month,
		Day:         day,
		Hour:        hour,
		Minute:      minute,
		Second:      sec,
		Microsecond: us,
	}
	if err := ts.Validate(); err != nil {
		return temporal.Timestamp{}, err
	}

	return ts, nil
}
