package importing

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
)

var ErrUnrecognizedDate = errors.New("unrecognized date format")

// canonicalDateLayout is the storage format for dates of birth.
const canonicalDateLayout = "2006-01-02"

// dateLayouts are tried strictly in order; the first layout that parses wins.
// Ambiguous inputs like 03/04/2020 therefore resolve as US month-first —
// a deliberate tie-break, not locale detection. Numeric fields use the
// unpadded reference forms ("1", "2"), which accept both "3/4/2020" and
// "03/04/2020".
var dateLayouts = []string{
	"2006-1-2",        // ISO
	"1/2/2006",        // US
	"2/1/2006",        // European
	"2-1-2006",        // European, dashes
	"1-2-2006",        // US, dashes
	"2006/1/2",        // ISO, slashes
	"Jan 2, 2006",     // short month
	"January 2, 2006", // long month
	"2 Jan 2006",
	"2 January 2006",
	"2006 Jan 2",
	"2006 January 2",
	"1.2.2006", // US, dots
	"2.1.2006", // European, dots
	"20060102", // compact
}

// fallbackLayouts catch stragglers the explicit list misses. Results are only
// trusted when the year lands in a sane range, to keep garbage input from
// sneaking through as a date.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006.01.02",
	"Jan 2 2006",
	"2 Jan, 2006",
	"Monday, January 2, 2006",
	"January 2 2006",
}

const (
	fallbackMinYear = 1900
	fallbackMaxYear = 2100
)

// NormalizeDate parses a free-form date-of-birth string into canonical
// YYYY-MM-DD form. Empty input is a failure the caller decides how to treat;
// dates of birth are optional.
func NormalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrUnrecognizedDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(canonicalDateLayout), nil
		}
	}

	for _, layout := range fallbackLayouts {
		t, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if t.Year() < fallbackMinYear || t.Year() > fallbackMaxYear {
			continue
		}
		return t.Format(canonicalDateLayout), nil
	}

	return "", errors.Wrapf(ErrUnrecognizedDate, "%q", raw)
}
