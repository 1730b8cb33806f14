// Package style resolves the connection-negotiated formatting parameters
// that govern text decoding of temporal values.
//
// PostgreSQL reports two parameters relevant to this module: DateStyle
// (the ordering of year/month/day fields in text output) and
// IntervalStyle (the text layout of interval values). Both are resolved
// into closed enumerations exactly once, when a decoder is constructed;
// the resolvers are pure functions of the raw parameter bytes and are
// never re-consulted afterwards.
package style

import (
	"bytes"
	"fmt"

	"github.com/Jolbas/pgtemporal/errs"
)

type (
	// DateOrder is the resolved field ordering for text-encoded dates
	// and timestamps.
	DateOrder uint8

	// IntervalStyle is the resolved text layout for interval values.
	IntervalStyle uint8
)

const (
	OrderYMD DateOrder = iota // year-month-day (ISO)
	OrderDMY                  // day-month-year (German, SQL/Postgres with DMY)
	OrderMDY                  // month-day-year (SQL/Postgres with MDY)

	// The verbose orders carry a leading weekday token and a trailing
	// year, with the month given as a 3-letter abbreviation. Produced
	// only by the Postgres DateStyle, and only for timestamps.
	OrderVerboseDayMonth
	OrderVerboseMonthDay
)

const (
	IntervalPostgres        IntervalStyle = iota // default "postgres" layout
	IntervalSQLStandard                          // "sql_standard"
	IntervalISO8601                              // "iso_8601"
	IntervalPostgresVerbose                      // "postgres_verbose"
)

// Defaults used when the connection does not report a parameter value.
const (
	DefaultDateStyle     = "ISO, DMY"
	DefaultIntervalStyle = "postgres"
)

func (o DateOrder) String() string {
	switch o {
	case OrderYMD:
		return "YMD"
	case OrderDMY:
		return "DMY"
	case OrderMDY:
		return "MDY"
	case OrderVerboseDayMonth:
		return "VerboseDMY"
	case OrderVerboseMonthDay:
		return "VerboseMDY"
	default:
		return "Unknown"
	}
}

func (s IntervalStyle) String() string {
	switch s {
	case IntervalPostgres:
		return "postgres"
	case IntervalSQLStandard:
		return "sql_standard"
	case IntervalISO8601:
		return "iso_8601"
	case IntervalPostgresVerbose:
		return "postgres_verbose"
	default:
		return "unknown"
	}
}

// DateOrderOf resolves the field order used by text-encoded dates.
//
// The German style always reads day-first; the SQL and Postgres styles
// read day-first only when the parameter ends in "DMY". An empty raw
// value resolves to the DefaultDateStyle. Unrecognized values fail with
// errs.ErrInvalidStyle.
func DateOrderOf(raw []byte) (DateOrder, error) {
	if len(raw) == 0 {
		raw = []byte(DefaultDateStyle)
	}

	switch raw[0] {
	case 'I': // ISO
		return OrderYMD, nil
	case 'G': // German
		return OrderDMY, nil
	case 'S', 'P': // SQL or Postgres
		if bytes.HasSuffix(raw, []byte("DMY")) {
			return OrderDMY, nil
		}

		return OrderMDY, nil
	}

	return 0, fmt.Errorf("%w: unexpected DateStyle %q", errs.ErrInvalidStyle, raw)
}

// TimestampOrderOf resolves the field order used by text-encoded
// timestamps.
//
// It differs from DateOrderOf only for the Postgres style, which formats
// timestamps in a verbose layout with a leading weekday and an
// abbreviated month name instead of the plain numeric ordering.
func TimestampOrderOf(raw []byte) (DateOrder, error) {
	if len(raw) == 0 {
		raw = []byte(DefaultDateStyle)
	}

	switch raw[0] {
	case 'I': // ISO
		return OrderYMD, nil
	case 'G': // German
		return OrderDMY, nil
	case 'S': // SQL
		if bytes.HasSuffix(raw, []byte("DMY")) {
			return OrderDMY, nil
		}

		return OrderMDY, nil
	case 'P': // Postgres
		if bytes.HasSuffix(raw, []byte("DMY")) {
			return OrderVerboseDayMonth, nil
		}

		return OrderVerboseMonthDay, nil
	}

	return 0, fmt.Errorf("%w: unexpected DateStyle %q", errs.ErrInvalidStyle, raw)
}

// IsISO reports whether the raw DateStyle value selects the ISO output
// format. An empty value resolves to the default, which is ISO.
func IsISO(raw []byte) bool {
	if len(raw) == 0 {
		return true
	}

	return raw[0] == 'I'
}

// IntervalStyleOf resolves the IntervalStyle parameter into its closed
// enumeration. An empty raw value resolves to the DefaultIntervalStyle.
// Unrecognized values fail with errs.ErrInvalidStyle.
func IntervalStyleOf(raw []byte) (IntervalStyle, error) {
	if len(raw) == 0 {
		raw = []byte(DefaultIntervalStyle)
	}

	switch string(raw) {
	case "postgres":
		return IntervalPostgres, nil
	case "sql_standard":
		return IntervalSQLStandard, nil
	case "iso_8601":
		return IntervalISO8601, nil
	case "postgres_verbose":
		return IntervalPostgresVerbose, nil
	}

	return 0, fmt.Errorf("%w: unexpected IntervalStyle %q", errs.ErrInvalidStyle, raw)
}
