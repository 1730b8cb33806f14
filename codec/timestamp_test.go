package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
	"github.com/Jolbas/pgtemporal/temporal"
	"github.com/Jolbas/pgtemporal/wire"
)

func TestTimestampNoTzTextEncoder_Append(t *testing.T) {
	tests := []struct {
		ts   temporal.Timestamp
		want string
	}{
		{temporal.Timestamp{Year: 2024, Month: 5, Day: 6, Hour: 7, Minute: 8, Second: 9}, "2024-05-06 07:08:09"},
		{temporal.Timestamp{Year: 1, Month: 1, Day: 1}, "0001-01-01 00:00:00"},
		{
			temporal.Timestamp{Year: 9999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Microsecond: 999_999},
			"9999-12-31 23:59:59.999999",
		},
	}

	for _, tt := range tests {
		got, err := TimestampNoTzTextEncoder{}.Append(nil, tt.ts)
		require.NoError(t, err)
		require.Equal(t, tt.want, string(got))
	}
}

func TestTimestampTextEncoder_Append(t *testing.T) {
	loc := time.FixedZone("test", 19800)
	ts := temporal.Timestamp{Year: 2024, Month: 5, Day: 6, Hour: 7, Minute: 8, Second: 9, Loc: loc}

	got, err := TimestampTextEncoder{}.Append(nil, ts)
	require.NoError(t, err)
	require.Equal(t, "2024-05-06 07:08:09+05:30", string(got))
}

func TestTimestampTextEncoder_DowngradesNaiveValues(t *testing.T) {
	ts := temporal.Timestamp{Year: 2024, Month: 5, Day: 6, Hour: 7, Minute: 8, Second: 9}

	got, err := TimestampTextEncoder{}.Append(nil, ts)
	require.NoError(t, err)
	require.Equal(t, "2024-05-06 07:08:09", string(got))
}

func TestTimestampBinaryEncoder_Append(t *testing.T) {
	// An aware value is normalized to UTC before taking the epoch delta.
	ts := temporal.Timestamp{Year: 2000, Month: 1, Day: 1, Hour: 2, Loc: time.FixedZone("test", 7200)}

	buf, err := TimestampBinaryEncoder{}.Append(nil, ts)
	require.NoError(t, err)

	micros, err := wire.Int64(buf)
	require.NoError(t, err)
	require.Zero(t, micros)
}

func TestTimestampNoTzBinaryEncoder_Append(t *testing.T) {
	tests := []struct {
		ts   temporal.Timestamp
		want int64
	}{
		{temporal.Timestamp{Year: 2000, Month: 1, Day: 1}, 0},
		{temporal.Timestamp{Year: 2000, Month: 1, Day: 1, Microsecond: 1}, 1},
		{
			temporal.Timestamp{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Microsecond: 999_999},
			-1,
		},
		{temporal.Timestamp{Year: 2000, Month: 1, Day: 2}, wire.MicrosPerDay},
	}

	for _, tt := range tests {
		buf, err := TimestampNoTzBinaryEncoder{}.Append(nil, tt.ts)
		require.NoError(t, err)

		micros, err := wire.Int64(buf)
		require.NoError(t, err)
		require.Equal(t, tt.want, micros, "ts %+v", tt.ts)
	}
}

func TestTimestampTextDecoder_ISO(t *testing.T) {
	dec, err := NewTimestampTextDecoder(nil)
	require.NoError(t, err)
	require.Equal(t, format.Text, dec.Format())

	want := temporal.Timestamp{Year: 2024, Month: 5, Day: 6, Hour: 7, Minute: 8, Second: 9, Microsecond: 123_456}

	for _, src := range []string{"2024-05-06 07:08:09.123456", "2024-05-06T07:08:09.123456"} {
		got, err := dec.Decode([]byte(src))
		require.NoError(t, err, "src %q", src)
		require.Equal(t, want, got)
		require.False(t, got.Aware())
	}
}

func TestTimestampTextDecoder_NumericOrders(t *testing.T) {
	want := temporal.Timestamp{Year: 2024, Month: 5, Day: 6, Hour: 7, Minute: 8, Second: 9}

	tests := []struct {
		style string
		src   string
	}{
		{"German", "06.05.2024 07:08:09"},
		{"SQL, DMY", "06/05/2024 07:08:09"},
		{"SQL, MDY", "05/06/2024 07:08:09"},
	}

	for _, tt := range tests {
		dec, err := NewTimestampTextDecoder(ctxWithStyle("DateStyle", tt.style))
		require.NoError(t, err, "style %q", tt.style)

		got, err := dec.Decode([]byte(tt.src))
		require.NoError(t, err, "style %q src %q", tt.style, tt.src)
		require.Equal(t, want, got)
	}
}

func TestTimestampTextDecoder_VerboseLayouts(t *testing.T) {
	want := temporal.Timestamp{Year: 2024, Month: 5, Day: 6, Hour: 7, Minute: 8, Second: 9, Microsecond: 500_000}

	tests := []struct {
		style string
		src   string
	}{
		{"Postgres, MDY", "Mon May 06 07:08:09.5 2024"},
		{"Postgres, DMY", "Mon 06 May 07:08:09.5 2024"},
	}

	for _, tt := range tests {
		dec, err := NewTimestampTextDecoder(ctxWithStyle("DateStyle", tt.style))
		require.NoError(t, err, "style %q", tt.style)

		got, err := dec.Decode([]byte(tt.src))
		require.NoError(t, err, "style %q src %q", tt.style, tt.src)
		require.Equal(t, want, got)
	}
}

func TestTimestampTextDecoder_BadMonthAbbr(t *testing.T) {
	dec, err := NewTimestampTextDecoder(ctxWithStyle("DateStyle", "Postgres, MDY"))
	require.NoError(t, err)

	_, err = dec.Decode([]byte("Mon Mxy 06 07:08:09 2024"))
	require.ErrorIs(t, err, errs.ErrParse)
}

func TestTimestampTextDecoder_RejectsBC(t *testing.T) {
	dec, err := NewTimestampTextDecoder(nil)
	require.NoError(t, err)

	_, err = dec.Decode([]byte("0042-05-06 07:08:09 BC"))
	require.ErrorIs(t, err, errs.ErrParse)
	require.ErrorContains(t, err, "BC")
}

func TestTimestampTextDecoder_BadInput(t *testing.T) {
	dec, err := NewTimestampTextDecoder(nil)
	require.NoError(t, err)

	for _, src := range []string{"", "2024-05-06", "07:08:09", "2024-05-06 07:08:09+02"} {
		_, err := dec.Decode([]byte(src))
		require.ErrorIs(t, err, errs.ErrParse, "src %q", src)
	}

	_, err = dec.Decode([]byte("2024-02-30 00:00:00"))
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestTimestampTzTextDecoder_Decode(t *testing.T) {
	dec, err := NewTimestampTzTextDecoder(nil)
	require.NoError(t, err)

	got, err := dec.Decode([]byte("2024-01-01 12:00:00+02"))
	require.NoError(t, err)
	require.Equal(t, temporal.Timestamp{Year: 2024, Month: 1, Day: 1, Hour: 10, Loc: time.UTC}, got)
}

func TestTimestampTzTextDecoder_SessionTimezone(t *testing.T) {
	loc := time.FixedZone("test", -3600)
	dec, err := NewTimestampTzTextDecoder(testConnCtx{tz: loc})
	require.NoError(t, err)

	got, err := dec.Decode([]byte("2024-01-01 12:00:00.25+02:00"))
	require.NoError(t, err)
	require.Equal(t, temporal.Timestamp{
		Year: 2024, Month: 1, Day: 1, Hour: 9, Microsecond: 250_000, Loc: loc,
	}, got)
}

func TestTimestampTzTextDecoder_OverflowKeepsParsedOffset(t *testing.T) {
	dec, err := NewTimestampTzTextDecoder(nil)
	require.NoError(t, err)

	// Converting to the session timezone would land in year 10000; the
	// parsed wall clock survives at its own offset instead.
	got, err := dec.Decode([]byte("9999-12-31 23:59:59-01:00"))
	require.NoError(t, err)
	require.Equal(t, 9999, got.Year)
	require.Equal(t, 23, got.Hour)

	_, offset := got.AsTime().Zone()
	require.Equal(t, -3600, offset)
}

func TestTimestampTzTextDecoder_OutOfRangeSource(t *testing.T) {
	dec, err := NewTimestampTzTextDecoder(nil)
	require.NoError(t, err)

	_, err = dec.Decode([]byte("10000-01-01 00:00:00+00"))
	require.ErrorIs(t, err, errs.ErrTooLarge)
}

func TestTimestampTzTextDecoder_NonISOStyle(t *testing.T) {
	dec, err := NewTimestampTzTextDecoder(ctxWithStyle("DateStyle", "German"))
	require.NoError(t, err)

	_, err = dec.Decode([]byte("01.01.2024 12:00:00+02"))
	require.ErrorIs(t, err, errs.ErrNotImplemented)
}

func TestTimestampTzTextDecoder_InvalidStyle(t *testing.T) {
	_, err := NewTimestampTzTextDecoder(ctxWithStyle("DateStyle", "bogus"))
	require.ErrorIs(t, err, errs.ErrInvalidStyle)
}

func TestTimestampBinaryDecoder_RoundTrip(t *testing.T) {
	dec, err := NewTimestampBinaryDecoder(nil)
	require.NoError(t, err)

	stamps := []temporal.Timestamp{
		{Year: 2000, Month: 1, Day: 1},
		{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Microsecond: 999_999},
		{Year: 1, Month: 1, Day: 1},
		{Year: 9999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Microsecond: 999_999},
		{Year: 2024, Month: 6, Day: 15, Hour: 13, Minute: 37, Second: 42, Microsecond: 1},
	}

	for _, want := range stamps {
		buf, err := TimestampNoTzBinaryEncoder{}.Append(nil, want)
		require.NoError(t, err)

		got, err := dec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestTimestampBinaryDecoder_OutOfRange(t *testing.T) {
	dec, err := NewTimestampBinaryDecoder(nil)
	require.NoError(t, err)

	_, err = dec.Decode(wire.AppendInt64(nil, 2921940*wire.MicrosPerDay))
	require.ErrorIs(t, err, errs.ErrTooLarge)

	_, err = dec.Decode(wire.AppendInt64(nil, -730120*wire.MicrosPerDay))
	require.ErrorIs(t, err, errs.ErrTooSmall)
}

func TestTimestampTzBinaryDecoder_Decode(t *testing.T) {
	dec, err := NewTimestampTzBinaryDecoder(nil)
	require.NoError(t, err)

	got, err := dec.Decode(wire.AppendInt64(nil, 0))
	require.NoError(t, err)
	require.Equal(t, temporal.Timestamp{Year: 2000, Month: 1, Day: 1, Loc: time.UTC}, got)
}

func TestTimestampTzBinaryDecoder_SessionTimezone(t *testing.T) {
	loc := time.FixedZone("test", -3600)
	dec, err := NewTimestampTzBinaryDecoder(testConnCtx{tz: loc})
	require.NoError(t, err)

	got, err := dec.Decode(wire.AppendInt64(nil, 0))
	require.NoError(t, err)
	require.Equal(t, temporal.Timestamp{Year: 1999, Month: 12, Day: 31, Hour: 23, Loc: loc}, got)
}

func TestTimestampTzBinaryDecoder_RoundTrip(t *testing.T) {
	loc := time.FixedZone("test", 19800)
	dec, err := NewTimestampTzBinaryDecoder(testConnCtx{tz: loc})
	require.NoError(t, err)

	want := temporal.Timestamp{
		Year: 2024, Month: 6, Day: 15,
		Hour: 13, Minute: 37, Second: 42, Microsecond: 123_456,
		Loc: loc,
	}

	buf, err := TimestampBinaryEncoder{}.Append(nil, want)
	require.NoError(t, err)

	got, err := dec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestTimestampTzBinaryDecoder_RangeAppliesToLocalTime(t *testing.T) {
	// One past the last UTC instant of year 9999.
	overMax := (time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).Unix() - wire.EpochUnixSeconds) * wire.MicrosPerSecond

	dec, err := NewTimestampTzBinaryDecoder(nil)
	require.NoError(t, err)

	_, err = dec.Decode(wire.AppendInt64(nil, overMax))
	require.ErrorIs(t, err, errs.ErrTooLarge)

	// The same instant read in a zone behind UTC still lands in 9999.
	behind := time.FixedZone("test", -3600)
	dec, err = NewTimestampTzBinaryDecoder(testConnCtx{tz: behind})
	require.NoError(t, err)

	got, err := dec.Decode(wire.AppendInt64(nil, overMax))
	require.NoError(t, err)
	require.Equal(t, temporal.Timestamp{Year: 9999, Month: 12, Day: 31, Hour: 23, Loc: behind}, got)
}

func TestTimestampTzBinaryDecoder_TooSmall(t *testing.T) {
	underMin := (time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()-wire.EpochUnixSeconds)*wire.MicrosPerSecond - 1

	dec, err := NewTimestampTzBinaryDecoder(nil)
	require.NoError(t, err)

	_, err = dec.Decode(wire.AppendInt64(nil, underMin))
	require.ErrorIs(t, err, errs.ErrTooSmall)
}
