package codec

import (
	"fmt"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
	"github.com/Jolbas/pgtemporal/style"
	"github.com/Jolbas/pgtemporal/temporal"
	"github.com/Jolbas/pgtemporal/wire"
)

// DateTextEncoder encodes a calendar date in text format.
//
// It always emits the literal YYYY-MM-DD form: whatever date order the
// server's DateStyle selects for output, this form is understood
// unambiguously on input, so encoding needs no connection context.
type DateTextEncoder struct{}

var _ Encoder[temporal.Date] = DateTextEncoder{}

func (DateTextEncoder) OID() uint32 {
	return wire.DateOID
}

func (DateTextEncoder) Format() format.Format {
	return format.Text
}

func (DateTextEncoder) Append(dst []byte, d temporal.Date) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return dst, err
	}

	dst = appendPad4(dst, d.Year)
	dst = append(dst, '-')
	dst = appendPad2(dst, d.Month)
	dst = append(dst, '-')
	dst = appendPad2(dst, d.Day)

	return dst, nil
}

// DateBinaryEncoder encodes a calendar date as a signed 32-bit count of
// days from the 2000-01-01 epoch.
type DateBinaryEncoder struct{}

var _ Encoder[temporal.Date] = DateBinaryEncoder{}

func (DateBinaryEncoder) OID() uint32 {
	return wire.DateOID
}

func (DateBinaryEncoder) Format() format.Format {
	return format.Binary
}

func (DateBinaryEncoder) Append(dst []byte, d temporal.Date) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return dst, err
	}

	days := d.Ordinal() - wire.DateEpochOrdinal

	return wire.AppendInt32(dst, int32(days)), nil
}

// DateTextDecoder decodes text dates. Construction resolves the field
// order from the connection's DateStyle; decoding slices the 10-byte
// fixed-width string accordingly.
type DateTextDecoder struct {
	order style.DateOrder
}

var _ Decoder[temporal.Date] = (*DateTextDecoder)(nil)

// NewDateTextDecoder resolves the date field order from ctx. An
// unrecognized DateStyle fails here, before any data is parsed.
func NewDateTextDecoder(ctx ConnContext) (*DateTextDecoder, error) {
	order, err := style.DateOrderOf(paramOf(ctx, "DateStyle"))
	if err != nil {
		return nil, err
	}

	return &DateTextDecoder{order: order}, nil
}

func (*DateTextDecoder) Format() format.Format {
	return format.Text
}

func (d *DateTextDecoder) Decode(src []byte) (temporal.Date, error) {
	if len(src) != 10 {
		return temporal.Date{}, fmt.Errorf("%w: date not supported: %q", errs.ErrParse, src)
	}

	var ye, mo, da []byte
	switch d.order {
	case style.OrderYMD:
		ye, mo, da = src[:4], src[5:7], src[8:]
	case style.OrderDMY:
		da, mo, ye = src[:2], src[3:5], src[6:]
	default:
		mo, da, ye = src[:2], src[3:5], src[6:]
	}

	year, err := atoi(ye)
	if err != nil {
		return temporal.Date{}, fmt.Errorf("cannot decode date %q: %w", src, err)
	}
	month, err := atoi(mo)
	if err != nil {
		return temporal.Date{}, fmt.Errorf("cannot decode date %q: %w", src, err)
	}
	day, err := atoi(da)
	if err != nil {
		return temporal.Date{}, fmt.Errorf("cannot decode date %q: %w", src, err)
	}

	date := temporal.Date{Year: year, Month: month, Day: day}
	if err := date.Validate(); err != nil {
		return temporal.Date{}, fmt.Errorf("cannot decode date %q: %w", src, err)
	}

	return date, nil
}

// DateBinaryDecoder decodes the signed 32-bit epoch-day form.
type DateBinaryDecoder struct{}

var _ Decoder[temporal.Date] = DateBinaryDecoder{}

// NewDateBinaryDecoder constructs a binary date decoder. The context is
// accepted for constructor uniformity; binary dates carry no
// style-dependent state.
func NewDateBinaryDecoder(_ ConnContext) (DateBinaryDecoder, error) {
	return DateBinaryDecoder{}, nil
}

func (DateBinaryDecoder) Format() format.Format {
	return format.Binary
}

func (DateBinaryDecoder) Decode(src []byte) (temporal.Date, error) {
	days, err := wire.Int32(src)
	if err != nil {
		return temporal.Date{}, fmt.Errorf("cannot decode date: %w", err)
	}

	return temporal.DateFromOrdinal(int(days) + wire.DateEpochOrdinal)
}
