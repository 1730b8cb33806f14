// Package pgtemporal converts native temporal values to and from the
// two wire representations of PostgreSQL's client protocol: the
// human-readable text form and the compact fixed-layout binary form.
//
// The package covers calendar dates, times of day (with and without a
// fixed UTC offset), timestamps (naive and offset-aware) and durations.
// Correct text decoding depends on connection-negotiated parameters —
// DateStyle and IntervalStyle — and on the session timezone, all of
// which are supplied through a codec.ConnContext snapshot when a
// decoder is constructed.
//
// # Basic Usage
//
// Encoding a value for a query parameter:
//
//	buf, err := pgtemporal.AppendDate(nil, temporal.Date{Year: 2024, Month: 2, Day: 29}, format.Text)
//	// buf == []byte("2024-02-29")
//
// Decoding a result column, given the column OID and wire format
// reported by the server:
//
//	dec, err := pgtemporal.NewDecoder(wire.TimestampTzOID, format.Binary, connCtx)
//	if err != nil {
//	    return err
//	}
//	v, err := dec.Decode(colData) // temporal.Timestamp in the session timezone
//
// Decoders snapshot the connection parameters at construction. When the
// server reports a DateStyle or IntervalStyle change, discard affected
// decoder instances and construct new ones; existing instances keep
// their original strategy.
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the codec package directly; wire byte-layout constants
// live in the wire package, native value types in temporal.
package pgtemporal

import (
	"fmt"
	"time"

	"github.com/Jolbas/pgtemporal/codec"
	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
	"github.com/Jolbas/pgtemporal/temporal"
	"github.com/Jolbas/pgtemporal/wire"
)

// NewDecoder constructs a decoder for the given column OID and wire
// format, bound to the given connection context.
//
// The returned decoder yields temporal.Date for date columns,
// temporal.Time for time and timetz, temporal.Timestamp for timestamp
// and timestamptz, and time.Duration for interval. Unsupported
// (oid, format) combinations fail with errs.ErrNotImplemented;
// unrecognized style parameter values fail with errs.ErrInvalidStyle.
func NewDecoder(oid uint32, f format.Format, ctx codec.ConnContext) (codec.AnyDecoder, error) {
	switch f {
	case format.Text:
		switch oid {
		case wire.DateOID:
			return anyOf[temporal.Date](codec.NewDateTextDecoder(ctx))
		case wire.TimeOID:
			return anyOf[temporal.Time](codec.NewTimeTextDecoder(ctx))
		case wire.TimeTzOID:
			return anyOf[temporal.Time](codec.NewTimeTzTextDecoder(ctx))
		case wire.TimestampOID:
			return anyOf[temporal.Timestamp](codec.NewTimestampTextDecoder(ctx))
		case wire.TimestampTzOID:
			return anyOf[temporal.Timestamp](codec.NewTimestampTzTextDecoder(ctx))
		case wire.IntervalOID:
			return anyOf[time.Duration](codec.NewIntervalTextDecoder(ctx))
		}
	case format.Binary:
		switch oid {
		case wire.DateOID:
			return anyOf[temporal.Date](codec.NewDateBinaryDecoder(ctx))
		case wire.TimeOID:
			return anyOf[temporal.Time](codec.NewTimeBinaryDecoder(ctx))
		case wire.TimeTzOID:
			return anyOf[temporal.Time](codec.NewTimeTzBinaryDecoder(ctx))
		case wire.TimestampOID:
			return anyOf[temporal.Timestamp](codec.NewTimestampBinaryDecoder(ctx))
		case wire.TimestampTzOID:
			return anyOf[temporal.Timestamp](codec.NewTimestampTzBinaryDecoder(ctx))
		case wire.IntervalOID:
			return anyOf[time.Duration](codec.NewIntervalBinaryDecoder(ctx))
		}
	}

	return nil, fmt.Errorf("%w: no decoder for oid %d in %s format", errs.ErrNotImplemented, oid, f)
}

// anyOf type-erases a freshly constructed decoder, propagating the
// construction error unwrapped.
func anyOf[T any](dec codec.Decoder[T], err error) (codec.AnyDecoder, error) {
	if err != nil {
		return nil, err
	}

	return codec.Any(dec), nil
}

// AppendDate appends the wire encoding of a calendar date.
func AppendDate(dst []byte, d temporal.Date, f format.Format) ([]byte, error) {
	if f == format.Binary {
		return codec.DateBinaryEncoder{}.Append(dst, d)
	}

	return codec.DateTextEncoder{}.Append(dst, d)
}

// AppendTime appends the wire encoding of a time of day. A value
// carrying a UTC offset is encoded as the offset-aware wire type.
func AppendTime(dst []byte, t temporal.Time, f format.Format) ([]byte, error) {
	if f == format.Binary {
		return codec.TimeBinaryEncoder{}.Append(dst, t)
	}

	return codec.TimeTextEncoder{}.Append(dst, t)
}

// AppendTimestamp appends the wire encoding of a timestamp. A naive
// value is encoded as the plain timestamp wire type, an aware one as
// timestamptz.
func AppendTimestamp(dst []byte, ts temporal.Timestamp, f format.Format) ([]byte, error) {
	if f == format.Binary {
		return codec.TimestampBinaryEncoder{}.Append(dst, ts)
	}

	return codec.TimestampTextEncoder{}.Append(dst, ts)
}

// AppendInterval appends the wire encoding of a duration. Text encoding
// consults the connection's IntervalStyle, so a context is required.
func AppendInterval(dst []byte, d time.Duration, f format.Format, ctx codec.ConnContext) ([]byte, error) {
	if f == format.Binary {
		return codec.IntervalBinaryEncoder{}.Append(dst, d)
	}

	enc, err := codec.NewIntervalTextEncoder(ctx)
	if err != nil {
		return dst, err
	}

	return enc.Append(dst, d)
}
