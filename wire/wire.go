// Package wire defines the byte-level contract of PostgreSQL's binary
// temporal formats: epoch anchors, field widths, type OIDs, and the
// big-endian integer packing primitives used by every binary codec.
//
// The constants here must match bit-for-bit what the protocol layer
// transmits; they are part of the public contract, not implementation
// detail.
package wire

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/Jolbas/pgtemporal/errs"
)

// OIDs of the temporal types in the system catalog.
const (
	DateOID        uint32 = 1082
	TimeOID        uint32 = 1083
	TimestampOID   uint32 = 1114
	TimestampTzOID uint32 = 1184
	TimeTzOID      uint32 = 1266
	IntervalOID    uint32 = 1186
)

// Fixed sizes of the binary representations, in bytes.
const (
	DateSize      = 4  // int32 days from the date epoch
	TimeSize      = 8  // int64 microseconds since midnight
	TimeTzSize    = 12 // int64 microseconds + int32 offset seconds west
	TimestampSize = 8  // int64 microseconds from the timestamp epoch
	IntervalSize  = 16 // int64 microseconds + int32 days + int32 months
)

// Epoch anchors. Binary encodings measure signed offsets from
// 2000-01-01 (midnight, naive or UTC-anchored depending on the type).
const (
	// DateEpochOrdinal is the proleptic-Gregorian ordinal of 2000-01-01,
	// counting 0001-01-01 as ordinal 1.
	DateEpochOrdinal = 730120

	// EpochUnixSeconds is the Unix timestamp of 2000-01-01T00:00:00Z.
	EpochUnixSeconds = 946684800
)

const (
	MicrosPerSecond = 1_000_000
	SecondsPerDay   = 86_400
	MicrosPerDay    = int64(SecondsPerDay) * MicrosPerSecond
)

// AppendInt32 appends v in big-endian byte order.
func AppendInt32(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

// AppendInt64 appends v in big-endian byte order.
func AppendInt64(dst []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v))
}

// Int32 reads a big-endian int32 from src, which must be exactly 4 bytes.
func Int32(src []byte) (int32, error) {
	if len(src) != 4 {
		return 0, fmt.Errorf("%w: expected 4 bytes, got %d", errs.ErrParse, len(src))
	}

	return int32(binary.BigEndian.Uint32(src)), nil
}

// Int64 reads a big-endian int64 from src, which must be exactly 8 bytes.
func Int64(src []byte) (int64, error) {
	if len(src) != 8 {
		return 0, fmt.Errorf("%w: expected 8 bytes, got %d", errs.ErrParse, len(src))
	}

	return int64(binary.BigEndian.Uint64(src)), nil
}

// AddInt returns a+b, reporting whether the sum stayed within the range
// of T.
func AddInt[T constraints.Signed](a, b T) (T, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}

	return sum, true
}

// MulInt64 returns a*b, reporting whether the product stayed within the
// int64 range.
func MulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == -1 && b == minInt64 || b == -1 && a == minInt64 {
		return 0, false
	}

	p := a * b
	if p/b != a {
		return 0, false
	}

	return p, true
}

const minInt64 = -1 << 63

// FloorDiv returns the quotient of a/b rounded toward negative infinity.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}

// FloorMod returns a-FloorDiv(a,b)*b; the result has the sign of b.
func FloorMod[T constraints.Signed](a, b T) T {
	return a - FloorDiv(a, b)*b
}
