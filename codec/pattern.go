package codec

import (
	"fmt"
	"regexp"

	"github.com/Jolbas/pgtemporal/errs"
)

// Fixed-structure pattern matchers shared by the text decoders. The
// timestamp patterns accept any non-alphanumeric byte as a field
// separator so that one pattern serves every numeric field order; the
// decoder assigns meaning to the captured fields from its resolved
// DateOrder.
var (
	// HH:MM:SS[.ffffff]
	timePattern = regexp.MustCompile(`^(\d+):(\d+):(\d+)(?:\.(\d+))?$`)

	// HH:MM:SS[.ffffff]±HH[:MM[:SS]]
	timeOffsetPattern = regexp.MustCompile(
		`^(\d+):(\d+):(\d+)(?:\.(\d+))?([-+])(\d+)(?::(\d+))?(?::(\d+))?$`)

	// three date fields, a separator (including T), three time fields
	timestampPattern = regexp.MustCompile(
		`^(\d+)[^A-Za-z0-9](\d+)[^A-Za-z0-9](\d+)` +
			`(?:T|[^A-Za-z0-9])` +
			`(\d+)[^A-Za-z0-9](\d+)[^A-Za-z0-9](\d+)(?:\.(\d+))?$`)

	// leading weekday token, month and day in either order (one of the
	// two may be a 3-letter month abbreviation), trailing year
	timestampVerbosePattern = regexp.MustCompile(
		`^[A-Za-z]+[^A-Za-z0-9]` +
			`(\d+|[A-Za-z]+)[^A-Za-z0-9]` +
			`(\d+|[A-Za-z]+)[^A-Za-z0-9]` +
			`(\d+)[^A-Za-z0-9](\d+)[^A-Za-z0-9](\d+)(?:\.(\d+))?` +
			`[^A-Za-z0-9](\d+)$`)

	// the ISO timestamp layout followed by a signed offset
	timestampOffsetPattern = regexp.MustCompile(
		`^(\d+)[^A-Za-z0-9](\d+)[^A-Za-z0-9](\d+)` +
			`(?:T|[^A-Za-z0-9])` +
			`(\d+)[^A-Za-z0-9](\d+)[^A-Za-z0-9](\d+)(?:\.(\d+))?` +
			`([-+])(\d+)(?::(\d+))?(?::(\d+))?$`)

	// optional years, months, days and an optional signed time component
	intervalPattern = regexp.MustCompile(
		`^(?:([-+]?\d+)\s+years?\s*)?` +
			`(?:([-+]?\d+)\s+mons?\s*)?` +
			`(?:([-+]?\d+)\s+days?\s*)?` +
			`(?:([-+])?(\d+):(\d+):(\d+)(?:\.(\d+))?)?$`)
)

// usPad[n] scales an n-digit second fraction up to microseconds.
var usPad = [...]int{0, 100_000, 10_000, 1_000, 100, 10, 1}

// fracMicros converts a fractional-seconds capture into microseconds,
// right-padding fractions shorter than 6 digits. An empty capture means
// zero; more than 6 digits exceeds the wire precision.
func fracMicros(frac []byte) (int, error) {
	if len(frac) == 0 {
		return 0, nil
	}
	if len(frac) > 6 {
		return 0, fmt.Errorf("%w: fraction %q exceeds microsecond precision", errs.ErrParse, frac)
	}

	us, err := atoi(frac)
	if err != nil {
		return 0, err
	}

	if len(frac) < 6 {
		us *= usPad[len(frac)]
	}

	return us, nil
}

// monthAbbr maps the fixed 3-letter month abbreviations of the verbose
// timestamp layout to month numbers.
var monthAbbr = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// signedOffsetSeconds combines the captured offset fields into signed
// seconds east of UTC.
func signedOffsetSeconds(sign, hours, minutes, seconds []byte) (int, error) {
	oh, err := atoi(hours)
	if err != nil {
		return 0, err
	}

	off := 3600 * oh
	if len(minutes) > 0 {
		om, err := atoi(minutes)
		if err != nil {
			return 0, err
		}
		off += 60 * om
	}
	if len(seconds) > 0 {
		os, err := atoi(seconds)
		if err != nil {
			return 0, err
		}
		off += os
	}

	if sign[0] == '-' {
		off = -off
	}

	return off, nil
}
