package importing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ISO", input: "2020-03-04", expected: "2020-03-04"},
		{name: "AmbiguousSlashesResolveUSFirst", input: "03/04/2020", expected: "2020-03-04"},
		{name: "EuropeanWhenUSImpossible", input: "15/01/2024", expected: "2024-01-15"},
		{name: "EuropeanDashes", input: "15-01-2024", expected: "2024-01-15"},
		{name: "ISOSlashes", input: "2024/01/15", expected: "2024-01-15"},
		{name: "ShortMonth", input: "Jan 15, 2024", expected: "2024-01-15"},
		{name: "LongMonth", input: "January 15, 2024", expected: "2024-01-15"},
		{name: "DayFirstLongMonth", input: "15 January 2024", expected: "2024-01-15"},
		{name: "YearFirstMonthName", input: "2024 Jan 15", expected: "2024-01-15"},
		{name: "Dots", input: "15.01.2024", expected: "2024-01-15"},
		{name: "Compact", input: "20240115", expected: "2024-01-15"},
		{name: "UnpaddedSlashes", input: "3/4/2020", expected: "2020-03-04"},
		{name: "UnpaddedISO", input: "2020-3-4", expected: "2020-03-04"},
		{name: "UnpaddedEuropeanDashes", input: "15-1-2024", expected: "2024-01-15"},
		{name: "UnpaddedDots", input: "3.4.2020", expected: "2020-03-04"},
		{name: "SurroundingWhitespace", input: "  2020-03-04  ", expected: "2020-03-04"},
		{name: "FallbackDateTime", input: "1985-06-15 00:00:00", expected: "1985-06-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeDate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNormalizeDate_Rejects(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "not a date", "99/99/9999", "13/32/2020", "tomorrow"} {
		_, err := NormalizeDate(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrUnrecognizedDate)
	}
}

func TestNormalizeDate_CalendarValidation(t *testing.T) {
	t.Parallel()

	// February 30th fits every layout's shape and none of its calendars.
	_, err := NormalizeDate("2021-02-30")
	require.Error(t, err)
}
