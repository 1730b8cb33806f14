package codec

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/wire"
)

func TestIntervalTextEncoder_Postgres(t *testing.T) {
	enc, err := NewIntervalTextEncoder(nil)
	require.NoError(t, err)
	require.Equal(t, wire.IntervalOID, enc.OID())

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{time.Hour, "1:00:00"},
		{time.Second + 500*time.Millisecond, "0:00:01.500000"},
		{24 * time.Hour, "1 day, 0:00:00"},
		{48*time.Hour + time.Hour + 2*time.Minute + 3*time.Second, "2 days, 1:02:03"},
		{-86399 * time.Second, "-1 day, 0:00:01"},
		{-2 * 24 * time.Hour, "-2 days, 0:00:00"},
	}

	for _, tt := range tests {
		got, err := enc.Append(nil, tt.d)
		require.NoError(t, err)
		require.Equal(t, tt.want, string(got), "duration %v", tt.d)
	}
}

func TestIntervalTextEncoder_SQLStandard(t *testing.T) {
	enc, err := NewIntervalTextEncoder(ctxWithStyle("IntervalStyle", "sql_standard"))
	require.NoError(t, err)

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "+0 day +0 second +0 microsecond"},
		{25*time.Hour + time.Microsecond, "+1 day +3600 second +1 microsecond"},
		{-86399 * time.Second, "-1 day +1 second +0 microsecond"},
	}

	for _, tt := range tests {
		got, err := enc.Append(nil, tt.d)
		require.NoError(t, err)
		require.Equal(t, tt.want, string(got), "duration %v", tt.d)
	}
}

func TestNewIntervalTextEncoder_InvalidStyle(t *testing.T) {
	_, err := NewIntervalTextEncoder(ctxWithStyle("IntervalStyle", "fancy"))
	require.ErrorIs(t, err, errs.ErrInvalidStyle)
}

func TestIntervalBinaryEncoder_Append(t *testing.T) {
	buf, err := IntervalBinaryEncoder{}.Append(nil, 25*time.Hour+time.Microsecond)
	require.NoError(t, err)
	require.Len(t, buf, wire.IntervalSize)

	micros, err := wire.Int64(buf[:8])
	require.NoError(t, err)
	require.Equal(t, int64(3600_000_001), micros)

	days, err := wire.Int32(buf[8:12])
	require.NoError(t, err)
	require.Equal(t, int32(1), days)

	months, err := wire.Int32(buf[12:])
	require.NoError(t, err)
	require.Zero(t, months)
}

func TestIntervalBinaryEncoder_NegativeNormalization(t *testing.T) {
	buf, err := IntervalBinaryEncoder{}.Append(nil, -86399*time.Second)
	require.NoError(t, err)

	micros, err := wire.Int64(buf[:8])
	require.NoError(t, err)
	require.Equal(t, int64(1_000_000), micros)

	days, err := wire.Int32(buf[8:12])
	require.NoError(t, err)
	require.Equal(t, int32(-1), days)
}

func TestIntervalTextDecoder_Decode(t *testing.T) {
	dec, err := NewIntervalTextDecoder(nil)
	require.NoError(t, err)

	tests := []struct {
		src  string
		want time.Duration
	}{
		{"04:05:06", 4*time.Hour + 5*time.Minute + 6*time.Second},
		{"-08:00:00", -8 * time.Hour},
		{"3 days 04:05:06.789", 3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 789*time.Millisecond},
		{"1 day", 24 * time.Hour},
		{"-2 days +01:00:00", -47 * time.Hour},
		{"2 mons", 60 * 24 * time.Hour},
		{"1 year 2 mons 3 days 04:05:06.789", (365+60+3)*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 789*time.Millisecond},
		{"-1 years -2 mons", -(365 + 60) * 24 * time.Hour},
	}

	for _, tt := range tests {
		got, err := dec.Decode([]byte(tt.src))
		require.NoError(t, err, "src %q", tt.src)
		require.Equal(t, tt.want, got, "src %q", tt.src)
	}
}

func TestIntervalTextDecoder_BadInput(t *testing.T) {
	dec, err := NewIntervalTextDecoder(nil)
	require.NoError(t, err)

	for _, src := range []string{"bogus", "3 fortnights", "1 day and a bit"} {
		_, err := dec.Decode([]byte(src))
		require.ErrorIs(t, err, errs.ErrParse, "src %q", src)
	}
}

func TestIntervalTextDecoder_UnimplementedStyles(t *testing.T) {
	for _, s := range []string{"iso_8601", "postgres_verbose", "sql_standard"} {
		dec, err := NewIntervalTextDecoder(ctxWithStyle("IntervalStyle", s))
		require.NoError(t, err, "style %q", s)

		_, err = dec.Decode([]byte("04:05:06"))
		require.ErrorIs(t, err, errs.ErrNotImplemented, "style %q", s)
		require.ErrorContains(t, err, s)
	}
}

func TestNewIntervalTextDecoder_InvalidStyle(t *testing.T) {
	_, err := NewIntervalTextDecoder(ctxWithStyle("IntervalStyle", "fancy"))
	require.ErrorIs(t, err, errs.ErrInvalidStyle)
}

func TestIntervalBinaryDecoder_RoundTrip(t *testing.T) {
	dec, err := NewIntervalBinaryDecoder(nil)
	require.NoError(t, err)

	durations := []time.Duration{
		0,
		time.Microsecond,
		-time.Microsecond,
		25*time.Hour + 42*time.Minute,
		-86399 * time.Second,
		10000 * 24 * time.Hour,
	}

	for _, want := range durations {
		buf, err := IntervalBinaryEncoder{}.Append(nil, want)
		require.NoError(t, err)

		got, err := dec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestIntervalBinaryDecoder_FoldsMonths(t *testing.T) {
	dec, err := NewIntervalBinaryDecoder(nil)
	require.NoError(t, err)

	pack := func(micros int64, days, months int32) []byte {
		buf := wire.AppendInt64(nil, micros)
		buf = wire.AppendInt32(buf, days)

		return wire.AppendInt32(buf, months)
	}

	// 14 months fold to 1 year + 2 months = 425 days.
	got, err := dec.Decode(pack(0, 5, 14))
	require.NoError(t, err)
	require.Equal(t, 430*24*time.Hour, got)

	// The month sign folds independently of the day sign.
	got, err = dec.Decode(pack(0, 5, -14))
	require.NoError(t, err)
	require.Equal(t, -420*24*time.Hour, got)
}

func TestIntervalBinaryDecoder_Overflow(t *testing.T) {
	dec, err := NewIntervalBinaryDecoder(nil)
	require.NoError(t, err)

	buf := wire.AppendInt64(nil, math.MaxInt64)
	buf = wire.AppendInt32(buf, 0)
	buf = wire.AppendInt32(buf, 0)

	_, err = dec.Decode(buf)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestIntervalBinaryDecoder_BadLength(t *testing.T) {
	dec, err := NewIntervalBinaryDecoder(nil)
	require.NoError(t, err)

	_, err = dec.Decode(make([]byte, 12))
	require.ErrorIs(t, err, errs.ErrParse)
}
