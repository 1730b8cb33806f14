package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Jolbas/pgtemporal/errs"
	"github.com/Jolbas/pgtemporal/format"
)

// ConnContext is the snapshot of connection state consulted when a
// codec is constructed. It is read exactly once per construction and
// never again.
type ConnContext interface {
	// Parameter returns the raw reported value of a run-time connection
	// parameter such as "DateStyle", or nil if the parameter is
	// unknown. Absence implies the documented default.
	Parameter(name string) []byte

	// Timezone returns the effective session timezone used by
	// offset-aware timestamp decoders. A nil result means UTC.
	Timezone() *time.Location
}

// Encoder converts a native value of type T into its wire bytes,
// appending to dst. OID identifies the wire type the encoded bytes
// belong to; an encoder that delegates to a sibling reports the base
// type's OID.
type Encoder[T any] interface {
	OID() uint32
	Format() format.Format
	Append(dst []byte, v T) ([]byte, error)
}

// Decoder parses wire bytes into a native value of type T. A failed
// decode returns a classified error, never a partial value.
type Decoder[T any] interface {
	Format() format.Format
	Decode(src []byte) (T, error)
}

// AnyDecoder is the type-erased form of Decoder used by registries that
// dispatch on column OID and wire format at runtime.
type AnyDecoder interface {
	Format() format.Format
	Decode(src []byte) (any, error)
}

type anyDecoder[T any] struct {
	dec Decoder[T]
}

func (a anyDecoder[T]) Format() format.Format {
	return a.dec.Format()
}

func (a anyDecoder[T]) Decode(src []byte) (any, error) {
	return a.dec.Decode(src)
}

// Any wraps a typed decoder for registry use.
func Any[T any](dec Decoder[T]) AnyDecoder {
	return anyDecoder[T]{dec: dec}
}

// paramOf reads a connection parameter, tolerating a nil context.
func paramOf(ctx ConnContext, name string) []byte {
	if ctx == nil {
		return nil
	}

	return ctx.Parameter(name)
}

// timezoneOf resolves the decoder target timezone, defaulting to UTC.
func timezoneOf(ctx ConnContext) *time.Location {
	if ctx == nil {
		return time.UTC
	}
	if tz := ctx.Timezone(); tz != nil {
		return tz
	}

	return time.UTC
}

func atoi(b []byte) (int, error) {
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", errs.ErrParse, b)
	}

	return n, nil
}

func appendPad2(dst []byte, v int) []byte {
	return append(dst, byte('0'+v/10), byte('0'+v%10))
}

func appendPad4(dst []byte, v int) []byte {
	dst = appendPad2(dst, v/100)

	return appendPad2(dst, v%100)
}

func appendPad6(dst []byte, v int) []byte {
	dst = appendPad2(dst, v/10000)

	return appendPad4(dst, v%10000)
}

// appendOffset appends a UTC offset in seconds east as ±HH:MM[:SS],
// omitting the seconds field when it is zero.
func appendOffset(dst []byte, offset int) []byte {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	dst = append(dst, sign)
	dst = appendPad2(dst, offset/3600)
	dst = append(dst, ':')
	dst = appendPad2(dst, offset%3600/60)
	if sec := offset % 60; sec != 0 {
		dst = append(dst, ':')
		dst = appendPad2(dst, sec)
	}

	return dst
}
