package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	d := time.Date(2000, time.December, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "01/12/2000", FormatDate(d))
}

func TestParseDate_RoundTrip(t *testing.T) {
	parsed, err := ParseDate("15/01/1999")
	require.NoError(t, err)

	assert.Equal(t, "15/01/1999", FormatDate(parsed))
}

func TestParseDate_CalendarOrderNotLexical(t *testing.T) {
	// "01/12/2000" sorts before "15/01/1999" as a string, but the 1999
	// date is the earlier calendar date.
	earlier, err := ParseDate("15/01/1999")
	require.NoError(t, err)
	later, err := ParseDate("01/12/2000")
	require.NoError(t, err)

	assert.True(t, earlier.Before(later))
	assert.True(t, "01/12/2000" < "15/01/1999")
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("1999-01-15")

	assert.Error(t, err)
}

func TestParseISODate(t *testing.T) {
	parsed, err := ParseISODate("1999-01-15")
	require.NoError(t, err)

	assert.Equal(t, "15/01/1999", FormatDate(parsed))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "05/03/2024 09:30", FormatTimestamp(ts))
}
